package repository

import (
	"context"
	"errors"
	"strconv"

	"restopos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// codigoInicialInsumo is the first code handed out when the table is empty.
const codigoInicialInsumo = 1000

// InsumoRepository defines the data access contract for ingredients and their
// stock records. Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory stubs.
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uint) (*model.Insumo, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Insumo, error)
	List(ctx context.Context) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error

	// ProximoCodigo returns the next sequential code, counting both active
	// and inactive rows so codes stay monotonic across soft-deletes.
	ProximoCodigo(ctx context.Context) (string, error)

	// Estoque de insumo
	FindEstoque(ctx context.Context, insumoID uint) (*model.EstoqueInsumo, error)
	UpsertEstoque(ctx context.Context, insumoID uint, quantidade decimal.Decimal) error
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return translate(r.db.WithContext(ctx).Create(i).Error, "insumo")
}

func (r *insumoRepo) FindByID(ctx context.Context, id uint) (*model.Insumo, error) {
	var i model.Insumo
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, translate(err, "insumo")
	}
	return &i, nil
}

func (r *insumoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&i).Error
	if err != nil {
		return nil, translate(err, "insumo")
	}
	return &i, nil
}

func (r *insumoRepo) List(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).Where("ativo = true").Order("codigo ASC").Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return translate(r.db.WithContext(ctx).Save(i).Error, "insumo")
}

func (r *insumoRepo) ProximoCodigo(ctx context.Context) (string, error) {
	var ultimo model.Insumo
	err := r.db.WithContext(ctx).Order("codigo DESC").First(&ultimo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return strconv.Itoa(codigoInicialInsumo), nil
	}
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(ultimo.Codigo)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n + 1), nil
}

func (r *insumoRepo) FindEstoque(ctx context.Context, insumoID uint) (*model.EstoqueInsumo, error) {
	var e model.EstoqueInsumo
	err := r.db.WithContext(ctx).Where("insumo_id = ?", insumoID).First(&e).Error
	if err != nil {
		return nil, translate(err, "estoque de insumo")
	}
	return &e, nil
}

// UpsertEstoque sets the absolute quantity, lazily creating the record on the
// first update for an insumo.
func (r *insumoRepo) UpsertEstoque(ctx context.Context, insumoID uint, quantidade decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.EstoqueInsumo{}).
		Where("insumo_id = ?", insumoID).
		Update("quantidade", quantidade)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.db.WithContext(ctx).Create(&model.EstoqueInsumo{
			InsumoID:   insumoID,
			Quantidade: quantidade,
		}).Error
	}
	return nil
}
