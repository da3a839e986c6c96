package repository

import (
	"context"

	"restopos/internal/model"

	"gorm.io/gorm"
)

type FichaTecnicaRepository interface {
	Create(ctx context.Context, f *model.FichaTecnica) error
	ListByProduto(ctx context.Context, produtoID uint) ([]model.FichaTecnica, error)
	Delete(ctx context.Context, id uint) error
}

type fichaTecnicaRepo struct{ db *gorm.DB }

func NewFichaTecnicaRepository(db *gorm.DB) FichaTecnicaRepository {
	return &fichaTecnicaRepo{db: db}
}

func (r *fichaTecnicaRepo) Create(ctx context.Context, f *model.FichaTecnica) error {
	return translate(r.db.WithContext(ctx).Create(f).Error, "ficha técnica")
}

func (r *fichaTecnicaRepo) ListByProduto(ctx context.Context, produtoID uint) ([]model.FichaTecnica, error) {
	var fichas []model.FichaTecnica
	err := r.db.WithContext(ctx).Preload("Insumo").
		Where("produto_id = ?", produtoID).
		Order("id ASC").
		Find(&fichas).Error
	return fichas, err
}

func (r *fichaTecnicaRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.FichaTecnica{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "ficha técnica")
	}
	return nil
}
