package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
	"github.com/jhoicas/Inventario-estoque/pkg/jwt"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

// SessionConfig configuración para la firma de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, registro, listado de usuarios y admin inicial.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	txRunner   TxRunner
	sessionCfg SessionConfig
	log        *logger.Logger
	cost       int
	dummyHash  []byte
}

// Option configura AuthUseCase.
type Option func(*AuthUseCase)

// WithBcryptCost cambia el costo de bcrypt (las pruebas usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner TxRunner, sessionCfg SessionConfig, log *logger.Logger, opts ...Option) (*AuthUseCase, error) {
	uc := &AuthUseCase{
		userRepo:   userRepo,
		txRunner:   txRunner,
		sessionCfg: sessionCfg,
		log:        log.Named("auth"),
		cost:       bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(uc)
	}
	// Hash de relleno: un usuario inexistente cuesta lo mismo que una contraseña incorrecta.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash de relleno: %w", err)
	}
	uc.dummyHash = dummy
	return uc, nil
}

// Authenticate verifica usuario y contraseña y emite un token de sesión.
// Usuario inexistente y contraseña incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	// Mismo recorte que en RegisterUser: " maria " se registra y entra como "maria".
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	hash := uc.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(in.Password)); err != nil || user == nil {
		uc.log.Debug().Msg("credenciales inválidas")
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.sessionCfg.Secret, user.ID, user.Username, user.Role, uc.sessionCfg.Issuer, uc.sessionCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ResolveSession valida un token y devuelve la sesión con el rol vigente del usuario.
// domain.ErrUnauthorized si el token es inválido, expiró o el usuario ya no existe.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, token string) (entity.Session, error) {
	claims, err := jwt.Parse(uc.sessionCfg.Secret, uc.sessionCfg.Issuer, strings.TrimSpace(token))
	if err != nil {
		return entity.Session{}, fmt.Errorf("%w: sesión inválida o expirada", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return entity.Session{}, err
	}
	if user == nil {
		return entity.Session{}, fmt.Errorf("%w: el usuario de la sesión ya no existe", domain.ErrUnauthorized)
	}
	return entity.Session{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// RegisterUser crea un usuario: solo un admin puede hacerlo. Hashea la contraseña con bcrypt.
// domain.ErrDuplicate si el nombre de usuario ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, sess entity.Session, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !sess.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede registrar usuarios", domain.ErrForbidden)
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.TrimSpace(in.Role)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = entity.RoleRegular
	}
	user, err := uc.newUser(in.Username, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrDuplicate, user.Username)
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("by", sess.UserID).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// ListUsers lista los usuarios (sin hashes). Solo admin.
func (uc *AuthUseCase) ListUsers(ctx context.Context, sess entity.Session) ([]dto.UserResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !sess.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede ver los usuarios", domain.ErrForbidden)
	}
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// EnsureDefaultAdmin crea el administrador inicial si no existe ningún usuario con rol admin.
// Es idempotente: nunca crea un segundo admin por defecto. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	created := false
	err := uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository) error {
		n, err := userRepo.CountByRole(ctx, entity.RoleAdmin)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		user, err := uc.newUser(username, password, entity.RoleAdmin)
		if err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// Otra inicialización concurrente pudo crearlo; solo es válido si ahora hay un admin.
		n, cerr := uc.userRepo.CountByRole(ctx, entity.RoleAdmin)
		if cerr != nil {
			return false, cerr
		}
		if n == 0 {
			return false, fmt.Errorf("%w: ya existe un usuario %q sin rol admin", domain.ErrDuplicate, username)
		}
		err = nil
	}
	if err != nil {
		return false, err
	}
	if created {
		uc.log.Info().Str("username", username).Msg("usuario administrador por defecto creado")
	} else {
		uc.log.Debug().Msg("usuario administrador ya existe")
	}
	return created, nil
}

func (uc *AuthUseCase) newUser(username, password, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: la contraseña excede 72 bytes", domain.ErrInvalidInput)
		}
		return nil, err
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
