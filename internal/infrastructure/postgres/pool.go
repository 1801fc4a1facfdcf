package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/pkg/config"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// Reintenta la conexión inicial cfg.Attempts() veces; si no lo logra devuelve domain.ErrUnavailable
// para que el llamador decida (no termina el proceso).
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// Un único cliente interactivo: pocas conexiones bastan.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	attempts := cfg.Attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", attempts).Msg("conexión a PostgreSQL fallida")
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: conexión a PostgreSQL: %w", domain.ErrUnavailable, ctx.Err())
		case <-time.After(cfg.ConnectBackoff * time.Duration(attempt)):
		}
	}
	return nil, fmt.Errorf("%w: conexión a PostgreSQL: %w", domain.ErrUnavailable, lastErr)
}
