package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/barberbook/barberbook-api/internal/config"
	"github.com/barberbook/barberbook-api/internal/infra/repository"
	"github.com/barberbook/barberbook-api/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

func migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.BarberProfile{},
		&models.Service{},
		&models.AvailabilityRule{},
		&models.Booking{},
		&models.WaitlistEntry{},
		&models.Review{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Double-booking guard. Only live rows contend for a slot; cancelled and
	// completed bookings free it. AutoMigrate cannot express a partial index,
	// so it is created directly.
	err = database.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s
		 ON bookings (barber_id, appointment_date, appointment_time)
		 WHERE status IN ('pending', 'confirmed')`,
		repository.UniqueActiveSlotIndex,
	)).Error
	if err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}

	return nil
}
