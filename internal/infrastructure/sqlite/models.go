package sqlite

import (
	"time"

	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

// Modelos gorm: el esquema se crea con AutoMigrate si no existe.

type userModel struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Username     string    `gorm:"type:text;not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         string    `gorm:"type:text;not null;check:chk_users_role,role IN ('admin','regular')"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

func (userModel) TableName() string { return "users" }

type productModel struct {
	ID              string    `gorm:"primaryKey;type:text"`
	Name            string    `gorm:"type:text;not null;uniqueIndex:idx_products_name"`
	Description     string    `gorm:"type:text;not null"`
	CurrentQuantity int64     `gorm:"not null;check:chk_products_current_quantity,current_quantity >= 0"`
	MinQuantity     int64     `gorm:"not null;check:chk_products_min_quantity,min_quantity >= 0"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (productModel) TableName() string { return "products" }

type movementModel struct {
	ID           string        `gorm:"primaryKey;type:text"`
	ProductID    string        `gorm:"type:text;not null;index:idx_stock_movements_product_date,priority:1"`
	Product      *productModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Type         string        `gorm:"type:text;not null;check:chk_stock_movements_type,type IN ('in','out')"`
	Quantity     int64         `gorm:"not null;check:chk_stock_movements_quantity,quantity > 0"`
	MovementDate time.Time     `gorm:"not null;index:idx_stock_movements_product_date,priority:2"`
	CreatedBy    *string       `gorm:"type:text"`
	Creator      *userModel    `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
}

func (movementModel) TableName() string { return "stock_movements" }

func fromUser(u *entity.User) *userModel {
	return &userModel{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash, Role: u.Role, CreatedAt: u.CreatedAt}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{ID: m.ID, Username: m.Username, PasswordHash: m.PasswordHash, Role: m.Role, CreatedAt: m.CreatedAt.UTC()}
}

func fromProduct(p *entity.Product) *productModel {
	return &productModel{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CurrentQuantity: p.CurrentQuantity,
		MinQuantity:     p.MinQuantity,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *productModel) toEntity() *entity.Product {
	return &entity.Product{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		CurrentQuantity: m.CurrentQuantity,
		MinQuantity:     m.MinQuantity,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func fromMovement(mv *entity.StockMovement) *movementModel {
	m := &movementModel{
		ID:           mv.ID,
		ProductID:    mv.ProductID,
		Type:         mv.Type,
		Quantity:     mv.Quantity,
		MovementDate: mv.Date,
	}
	if mv.CreatedBy != "" {
		createdBy := mv.CreatedBy
		m.CreatedBy = &createdBy
	}
	return m
}

func (m *movementModel) toEntity() *entity.StockMovement {
	mv := &entity.StockMovement{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.MovementDate.UTC(),
	}
	if m.CreatedBy != nil {
		mv.CreatedBy = *m.CreatedBy
	}
	return mv
}
