package repository

import (
	"context"

	"restopos/internal/model"

	"gorm.io/gorm"
)

type MesaRepository interface {
	Create(ctx context.Context, m *model.Mesa) error
	FindByID(ctx context.Context, id uint) (*model.Mesa, error)
	List(ctx context.Context) ([]model.Mesa, error)
	UpdateStatus(ctx context.Context, id uint, status string) error

	// UpdateStatusTx releases/changes a table status inside an ongoing
	// transaction (used by the comanda close path).
	UpdateStatusTx(tx *gorm.DB, id uint, status string) error
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) Create(ctx context.Context, m *model.Mesa) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "mesa")
}

func (r *mesaRepo) FindByID(ctx context.Context, id uint) (*model.Mesa, error) {
	var m model.Mesa
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "mesa")
	}
	return &m, nil
}

func (r *mesaRepo) List(ctx context.Context) ([]model.Mesa, error) {
	var mesas []model.Mesa
	err := r.db.WithContext(ctx).Order("numero ASC").Find(&mesas).Error
	return mesas, err
}

func (r *mesaRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Mesa{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "mesa")
	}
	return nil
}

func (r *mesaRepo) UpdateStatusTx(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&model.Mesa{}).Where("id = ?", id).Update("status", status).Error
}
