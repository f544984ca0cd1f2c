package database

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/logging"
)

var DB *gorm.DB

func dsnFromEnv() string {
	sslmode := getenv("DB_SSLMODE", "require")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tobehealthy&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)
}

func ConnectDB(log *zap.Logger) {
	log.Info("connecting to PostgreSQL")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsnFromEnv(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: logging.NewGormLogger(log),
	})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	DB = db
	log.Info("database connected")
}

func TunePool(log *zap.Logger) {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUp(log *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
