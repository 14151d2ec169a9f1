package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jumper1221/Sber-test-task/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.User{},
		&model.Payment{},
		&model.PaymentLog{},
		&model.RefreshToken{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}
	logger.Info("GORM auto-migrations completed successfully")

	// CHECK constraints are PostgreSQL only; the sqlite test database relies on
	// the service-level validation.
	if db.Dialector.Name() == "postgres" {
		logger.Info("Creating check constraints...")
		if err := createCheckConstraints(db); err != nil {
			logger.Error("Failed to create check constraints", zap.Error(err))
			return err
		}
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCheckConstraints adds the table constraints GORM doesn't handle automatically
func createCheckConstraints(db *gorm.DB) error {
	constraints := []struct {
		table, name, check string
	}{
		{"payments", "ck_payments_amount_positive", "amount > 0"},
		{"payments", "ck_payments_status", "status IN ('pending', 'confirmed', 'cancelled')"},
		{"payments", "ck_payments_card_last4", "card_last4 ~ '^[0-9]{4}$'"},
		{"payment_logs", "ck_payment_logs_new_status", "new_status IN ('confirmed', 'cancelled')"},
	}

	for _, c := range constraints {
		stmt := fmt.Sprintf(`DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, c.name, c.table, c.name, c.check)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", c.name, err)
		}
	}
	return nil
}
