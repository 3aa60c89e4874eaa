package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tailor-booking/logger"
	"tailor-booking/models/appointment"
	"tailor-booking/models/booking"
	"tailor-booking/models/counter"
	"tailor-booking/models/invoice"
	"tailor-booking/models/log"
	"tailor-booking/models/order"
	"tailor-booking/models/service"
	"tailor-booking/models/user"
	"tailor-booking/models/verification"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return DB, nil
}

// Migrate runs auto migration for all models, leaves first so foreign keys
// always have their referenced tables.
func Migrate(db *gorm.DB) error {
	// Stage 1: foundation models without references
	stage1 := []interface{}{
		&user.User{},
		&service.Service{},
		&counter.Counter{},
		&verification.Code{},
		&log.Log{},
	}

	for _, model := range stage1 {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing users
	stage2 := []interface{}{
		&booking.Booking{},
		&order.Order{},
		&appointment.Appointment{},
	}

	for _, model := range stage2 {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: models referencing orders
	if err := db.AutoMigrate(&invoice.Invoice{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &invoice.Invoice{}, err)
	}

	return nil
}
