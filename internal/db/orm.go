package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skybound/flightline/internal/logging"
	gormmodels "skybound/flightline/internal/models/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// MigrateORM keeps the GORM-managed tables in step with the models. The
// sqlx-managed tables are created by SQL migrations, not here.
func MigrateORM(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormmodels.AircraftComponent{},
		&gormmodels.MaintenanceVisit{},
	)
}
