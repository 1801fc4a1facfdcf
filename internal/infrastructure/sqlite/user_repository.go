package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return mapError(r.db.WithContext(ctx).Create(fromUser(user)).Error, "insert user")
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.take(ctx, "username = ?", username)
}

func (r *UserRepo) take(ctx context.Context, cond, arg string) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "get user")
	}
	return m.toEntity(), nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, mapError(err, "count users")
	}
	return n, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("created_at, username").Find(&rows).Error; err != nil {
		return nil, mapError(err, "list users")
	}
	list := make([]*entity.User, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}
