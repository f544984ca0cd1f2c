package database

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"tobehealthy_backend/internals/databases/migrations"
)

// Migrate applies the embedded goose migrations. Runs over database/sql
// (lib/pq) rather than the GORM handle so goose owns its own connection.
func Migrate(log *zap.Logger) {
	db, err := sql.Open("postgres", dsnFromEnv())
	if err != nil {
		log.Fatal("migrate: open failed", zap.Error(err))
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("migrate: set dialect failed", zap.Error(err))
	}
	if err := goose.Up(db, "."); err != nil {
		log.Fatal("migrate: up failed", zap.Error(err))
	}
	log.Info("migrations applied")
}
