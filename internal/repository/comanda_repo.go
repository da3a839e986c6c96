package repository

import (
	"context"
	"time"

	"restopos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComandaRepository is the only writer of comanda aggregate fields
// (total_itens / total_valor); every other component reads them.
type ComandaRepository interface {
	Create(ctx context.Context, c *model.Comanda) error
	FindByID(ctx context.Context, id uint) (*model.Comanda, error)
	ListAbertas(ctx context.Context) ([]model.Comanda, error)
	ListItens(ctx context.Context, comandaID uint) ([]model.ItemComanda, error)

	// Item insertion and total recomputation run inside one transaction —
	// callers must pass the tx instance.
	CreateItemTx(tx *gorm.DB, item *model.ItemComanda) error
	ListItensTx(tx *gorm.DB, comandaID uint) ([]model.ItemComanda, error)
	UpdateTotaisTx(tx *gorm.DB, comandaID uint, totalItens int, totalValor decimal.Decimal) error

	// FecharTx flips status aberta → fechada and stamps dataFechamento.
	// Returns the number of rows updated: 0 means the comanda was already
	// closed (or cancelled) by a concurrent caller.
	FecharTx(tx *gorm.DB, id uint, fechadaEm time.Time) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) DB() *gorm.DB { return r.db }

func (r *comandaRepo) Create(ctx context.Context, c *model.Comanda) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "comanda")
}

func (r *comandaRepo) FindByID(ctx context.Context, id uint) (*model.Comanda, error) {
	var c model.Comanda
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "comanda")
	}
	return &c, nil
}

func (r *comandaRepo) ListAbertas(ctx context.Context) ([]model.Comanda, error) {
	var comandas []model.Comanda
	err := r.db.WithContext(ctx).
		Where("status = ?", "aberta").
		Order("data_abertura ASC").
		Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) ListItens(ctx context.Context, comandaID uint) ([]model.ItemComanda, error) {
	var itens []model.ItemComanda
	err := r.db.WithContext(ctx).Preload("Produto").
		Where("comanda_id = ?", comandaID).
		Order("id ASC").
		Find(&itens).Error
	return itens, err
}

func (r *comandaRepo) CreateItemTx(tx *gorm.DB, item *model.ItemComanda) error {
	return translate(tx.Create(item).Error, "item de comanda")
}

func (r *comandaRepo) ListItensTx(tx *gorm.DB, comandaID uint) ([]model.ItemComanda, error) {
	var itens []model.ItemComanda
	err := tx.Where("comanda_id = ?", comandaID).Order("id ASC").Find(&itens).Error
	return itens, err
}

func (r *comandaRepo) UpdateTotaisTx(tx *gorm.DB, comandaID uint, totalItens int, totalValor decimal.Decimal) error {
	return tx.Model(&model.Comanda{}).Where("id = ?", comandaID).Updates(map[string]interface{}{
		"total_itens": totalItens,
		"total_valor": totalValor,
	}).Error
}

func (r *comandaRepo) FecharTx(tx *gorm.DB, id uint, fechadaEm time.Time) (int64, error) {
	res := tx.Model(&model.Comanda{}).
		Where("id = ? AND status = ?", id, "aberta").
		Updates(map[string]interface{}{
			"status":          "fechada",
			"data_fechamento": fechadaEm,
		})
	return res.RowsAffected, res.Error
}
