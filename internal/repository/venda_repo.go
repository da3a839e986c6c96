package repository

import (
	"context"

	"restopos/internal/dto"
	"restopos/internal/model"

	"gorm.io/gorm"
)

type VendaRepository interface {
	// CreateTx appends a venda inside the comanda-close transaction.
	CreateTx(tx *gorm.DB, v *model.Venda) error

	// NextNumero draws the next value from the vendas numbering sequence.
	// Sequence-backed so concurrent closes can never produce colliding
	// venda or nota numbers.
	NextNumero(ctx context.Context, tx *gorm.DB) (int64, error)

	FindByID(ctx context.Context, id uint) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, error)
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return translate(tx.Create(v).Error, "venda")
}

func (r *vendaRepo) NextNumero(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('vendas_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *vendaRepo) FindByID(ctx context.Context, id uint) (*model.Venda, error) {
	var v model.Venda
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err, "venda")
	}
	return &v, nil
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, error) {
	var vendas []model.Venda

	q := r.db.WithContext(ctx).Model(&model.Venda{})
	if filter.DataInicio != "" {
		q = q.Where("data_venda >= ?", filter.DataInicio)
	}
	if filter.DataFim != "" {
		// inclusive end of day
		q = q.Where("data_venda < DATE(?) + INTERVAL '1 day'", filter.DataFim)
	}

	err := q.Order("data_venda DESC").Find(&vendas).Error
	return vendas, err
}
