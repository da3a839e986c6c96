package infra

import (
	"fmt"

	"restopos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL objects GORM cannot express
// (the venda number sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by the integration test
// harness against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Insumo{},
		&model.EstoqueInsumo{},
		&model.Produto{},
		&model.FichaTecnica{},
		&model.Mesa{},
		&model.Comanda{},
		&model.ItemComanda{},
		&model.Venda{},
		&model.Estoque{},
		&model.MovimentacaoEstoque{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Venda/nota numbers are drawn from a database sequence so they stay
	// unique under concurrent closes. Idempotent by IF NOT EXISTS.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS vendas_numero_seq START 1`).Error; err != nil {
		return fmt.Errorf("create sequence vendas_numero_seq: %w", err)
	}

	return nil
}
