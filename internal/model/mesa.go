package model

import "time"

// Mesa is a physical restaurant table.
// Status: "disponivel" | "ocupada" | "reservada" — transitions are
// unconstrained (any → any), set either directly or by closing a comanda.
type Mesa struct {
	ID         uint   `gorm:"primaryKey"`
	Numero     int    `gorm:"uniqueIndex;not null"`
	Capacidade int    `gorm:"not null;default:4"`
	Status     string `gorm:"type:varchar(20);not null;default:'disponivel'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
