package service

import (
	"context"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/rs/zerolog/log"
)

type MesaService interface {
	Criar(ctx context.Context, req dto.CriarMesaRequest) (*dto.MesaResponse, error)
	ObterPorID(ctx context.Context, id uint) (*dto.MesaResponse, error)
	Listar(ctx context.Context) ([]dto.MesaResponse, error)
	AtualizarStatus(ctx context.Context, id uint, status string) error
}

type mesaService struct {
	repo repository.MesaRepository
}

func NewMesaService(repo repository.MesaRepository) MesaService {
	return &mesaService{repo: repo}
}

func (s *mesaService) Criar(ctx context.Context, req dto.CriarMesaRequest) (*dto.MesaResponse, error) {
	capacidade := req.Capacidade
	if capacidade == 0 {
		capacidade = 4
	}
	m := &model.Mesa{
		Numero:     req.Numero,
		Capacidade: capacidade,
		Status:     "disponivel",
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return mesaToResponse(m), nil
}

func (s *mesaService) ObterPorID(ctx context.Context, id uint) (*dto.MesaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mesaToResponse(m), nil
}

func (s *mesaService) Listar(ctx context.Context) ([]dto.MesaResponse, error) {
	mesas, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listar mesas: store indisponível, retornando vazio")
		return []dto.MesaResponse{}, nil
	}
	resp := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		resp = append(resp, *mesaToResponse(&mesas[i]))
	}
	return resp, nil
}

// AtualizarStatus accepts any → any transitions; the same field is also
// written by the comanda close path (last writer wins).
func (s *mesaService) AtualizarStatus(ctx context.Context, id uint, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func mesaToResponse(m *model.Mesa) *dto.MesaResponse {
	return &dto.MesaResponse{
		ID:         m.ID,
		Numero:     m.Numero,
		Capacidade: m.Capacidade,
		Status:     m.Status,
	}
}
