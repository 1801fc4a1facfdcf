package sqlite

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

// MemoryPath abre una base en memoria (pruebas).
const MemoryPath = ":memory:"

// Open abre (o crea) la base SQLite en path y aplica el esquema si falta.
// Usa una sola conexión: es un almacén de un único usuario y así ":memory:" comparte estado.
func Open(path string, log *logger.Logger) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %s: %w", domain.ErrUnavailable, path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: abrir %s: %w", domain.ErrUnavailable, path, err)
	}
	if err := db.AutoMigrate(&userModel{}, &productModel{}, &movementModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, mapError(err, "migrate schema")
	}
	log.Debug().Str("path", path).Msg("almacenamiento SQLite listo")
	return db, nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
