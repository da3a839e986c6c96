package repository

import (
	"context"
	"errors"

	"restopos/internal/model"

	"gorm.io/gorm"
)

type EstoqueRepository interface {
	FindByProduto(ctx context.Context, produtoID uint) (*model.Estoque, error)
	List(ctx context.Context) ([]model.Estoque, error)

	// Movement insertion and the stock-record update run inside one
	// transaction — callers must pass the tx instance.
	FindByProdutoTx(tx *gorm.DB, produtoID uint) (*model.Estoque, error)
	UpsertQuantidadeTx(tx *gorm.DB, produtoID uint, quantidade int) error
	CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoEstoque) error

	ListMovimentacoes(ctx context.Context, produtoID uint) ([]model.MovimentacaoEstoque, error)

	DB() *gorm.DB
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueRepository(db *gorm.DB) EstoqueRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) DB() *gorm.DB { return r.db }

func (r *estoqueRepo) FindByProduto(ctx context.Context, produtoID uint) (*model.Estoque, error) {
	var e model.Estoque
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).First(&e).Error
	if err != nil {
		return nil, translate(err, "estoque")
	}
	return &e, nil
}

func (r *estoqueRepo) List(ctx context.Context) ([]model.Estoque, error) {
	var estoques []model.Estoque
	err := r.db.WithContext(ctx).Preload("Produto").Order("produto_id ASC").Find(&estoques).Error
	return estoques, err
}

func (r *estoqueRepo) FindByProdutoTx(tx *gorm.DB, produtoID uint) (*model.Estoque, error) {
	var e model.Estoque
	err := tx.Where("produto_id = ?", produtoID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// lazily created on first movement
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estoqueRepo) UpsertQuantidadeTx(tx *gorm.DB, produtoID uint, quantidade int) error {
	res := tx.Model(&model.Estoque{}).
		Where("produto_id = ?", produtoID).
		Update("quantidade", quantidade)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&model.Estoque{ProdutoID: produtoID, Quantidade: quantidade}).Error
	}
	return nil
}

func (r *estoqueRepo) CreateMovimentacaoTx(tx *gorm.DB, m *model.MovimentacaoEstoque) error {
	return tx.Create(m).Error
}

func (r *estoqueRepo) ListMovimentacoes(ctx context.Context, produtoID uint) ([]model.MovimentacaoEstoque, error) {
	var movs []model.MovimentacaoEstoque
	q := r.db.WithContext(ctx).Model(&model.MovimentacaoEstoque{})
	if produtoID != 0 {
		q = q.Where("produto_id = ?", produtoID)
	}
	err := q.Order("created_at DESC").Find(&movs).Error
	return movs, err
}
