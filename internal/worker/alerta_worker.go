package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertasKey is the Redis hash holding the current low-stock alert set,
// keyed by produto id. The dashboard endpoint reads it directly.
const AlertasKey = "alertas:estoque"

// alertaRegistro is the value stored per product in the alert hash.
type alertaRegistro struct {
	ProdutoID        uint   `json:"produto_id"`
	Quantidade       int    `json:"quantidade"`
	QuantidadeMinima int    `json:"quantidade_minima"`
	RegistradoEm     string `json:"registrado_em"`
}

// AlertaEstoqueWorker reconciles the alert set after each stock mutation:
// a product at or below its minimum enters the set, one above it leaves.
type AlertaEstoqueWorker struct {
	rdb *redis.Client
}

func NewAlertaEstoqueWorker(rdb *redis.Client) *AlertaEstoqueWorker {
	return &AlertaEstoqueWorker{rdb: rdb}
}

func (w *AlertaEstoqueWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var p AlertaEstoquePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}

	field := strconv.FormatUint(uint64(p.ProdutoID), 10)

	if p.Quantidade > p.QuantidadeMinima {
		return w.rdb.HDel(ctx, AlertasKey, field).Err()
	}

	reg := alertaRegistro{
		ProdutoID:        p.ProdutoID,
		Quantidade:       p.Quantidade,
		QuantidadeMinima: p.QuantidadeMinima,
		RegistradoEm:     time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	if err := w.rdb.HSet(ctx, AlertasKey, field, data).Err(); err != nil {
		return err
	}

	log.Warn().
		Uint("produto_id", p.ProdutoID).
		Int("quantidade", p.Quantidade).
		Int("quantidade_minima", p.QuantidadeMinima).
		Msg("estoque abaixo do mínimo")
	return nil
}
