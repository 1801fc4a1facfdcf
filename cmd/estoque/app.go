package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Inventario-estoque/internal/application/auth"
	"github.com/jhoicas/Inventario-estoque/internal/application/inventory"
	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/infrastructure/store"
	"github.com/jhoicas/Inventario-estoque/pkg/config"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

// app agrupa las dependencias de una invocación del shell. Cada comando abre y cierra la suya.
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	store        *store.Store
	auth         *auth.AuthUseCase
	stock        *inventory.StockUseCase
	adminCreated bool
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	st, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	authUC, err := auth.NewAuthUseCase(st.Users, st.Tx, auth.SessionConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	}, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	created, err := authUC.EnsureDefaultAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		// El nombre del admin inicial ya lo usa otra cuenta: se sigue sin admin para poder
		// corregir BOOTSTRAP_ADMIN_USERNAME en lugar de bloquear todos los comandos.
		log.Warn().Err(err).Str("username", cfg.Bootstrap.AdminUsername).
			Msg("no se pudo crear el administrador inicial; defina otro BOOTSTRAP_ADMIN_USERNAME")
	case err != nil:
		_ = st.Close()
		return nil, err
	}
	return &app{
		cfg:          cfg,
		log:          log,
		store:        st,
		auth:         authUC,
		stock:        inventory.NewStockUseCase(st.Tx, st.Products, st.Movements, log),
		adminCreated: created,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("cerrar almacenamiento")
	}
}

// session lee el token guardado por "login" y lo valida contra el almacenamiento.
func (a *app) session(ctx context.Context) (entity.Session, error) {
	raw, err := os.ReadFile(a.cfg.Session.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entity.Session{}, fmt.Errorf("%w: inicie sesión con 'estoque login'", domain.ErrUnauthorized)
		}
		return entity.Session{}, err
	}
	return a.auth.ResolveSession(ctx, strings.TrimSpace(string(raw)))
}

func (a *app) saveSession(token string) error {
	return os.WriteFile(a.cfg.Session.File, []byte(token+"\n"), 0o600)
}

func (a *app) clearSession() error {
	err := os.Remove(a.cfg.Session.File)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
