package repository

import (
	"context"
	"errors"
	"strconv"

	"restopos/internal/model"

	"gorm.io/gorm"
)

const codigoInicialProduto = 2000

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uint) (*model.Produto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	ProximoCodigo(ctx context.Context) (string, error)
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "produto")
}

func (r *produtoRepo) FindByID(ctx context.Context, id uint) (*model.Produto, error) {
	var p model.Produto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "produto")
	}
	return &p, nil
}

func (r *produtoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Where("codigo = ? AND ativo = true", codigo).First(&p).Error
	if err != nil {
		return nil, translate(err, "produto")
	}
	return &p, nil
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).Where("ativo = true").Order("codigo ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return translate(r.db.WithContext(ctx).Save(p).Error, "produto")
}

func (r *produtoRepo) ProximoCodigo(ctx context.Context) (string, error) {
	var ultimo model.Produto
	err := r.db.WithContext(ctx).Order("codigo DESC").First(&ultimo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return strconv.Itoa(codigoInicialProduto), nil
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
