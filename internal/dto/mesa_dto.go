package dto

type CriarMesaRequest struct {
	Numero     int `json:"numero"     validate:"required,min=1"`
	Capacidade int `json:"capacidade" validate:"omitempty,min=1"`
}

type AtualizarStatusMesaRequest struct {
	Status string `json:"status" validate:"required,oneof=disponivel ocupada reservada"`
}

type MesaResponse struct {
	ID         uint   `json:"id"`
	Numero     int    `json:"numero"`
	Capacidade int    `json:"capacidade"`
	Status     string `json:"status"`
}
