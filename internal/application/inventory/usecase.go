package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

// StockUseCase es el motor de contabilidad de stock: alta y edición de productos,
// entradas y salidas transaccionales y consultas de stock bajo.
// No guarda estado propio; el almacenamiento es la única fuente de verdad.
type StockUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	log          *logger.Logger
	now          func() time.Time
}

// Option configura StockUseCase.
type Option func(*StockUseCase)

// WithClock reemplaza el reloj usado para fechar movimientos.
func WithClock(now func() time.Time) Option {
	return func(uc *StockUseCase) { uc.now = now }
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	log *logger.Logger,
	opts ...Option,
) *StockUseCase {
	uc := &StockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log.Named("inventory"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AddProduct crea un producto con saldo 0.
func (uc *StockUseCase) AddProduct(ctx context.Context, sess entity.Session, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in, minQty, err := normalizeProduct(in)
	if err != nil {
		return nil, uc.rejected("add_product", err)
	}
	now := uc.timestamp()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		CurrentQuantity: 0,
		MinQuantity:     minQty,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			err = fmt.Errorf("%w: ya existe un producto llamado %q", domain.ErrDuplicate, product.Name)
		}
		return nil, uc.rejected("add_product", err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Int64("min_quantity", minQty).Msg("producto creado")
	return toProductResponse(product), nil
}

// UpdateProduct cambia nombre, descripción y mínimo. Nunca toca el saldo.
func (uc *StockUseCase) UpdateProduct(ctx context.Context, sess entity.Session, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	id, err := productID(id)
	if err != nil {
		return nil, uc.rejected("update_product", err)
	}
	in, minQty, err := normalizeProduct(in)
	if err != nil {
		return nil, uc.rejected("update_product", err)
	}

	var out *dto.ProductResponse
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound(id)
		}
		product.Name = in.Name
		product.Description = in.Description
		product.MinQuantity = minQty
		product.UpdatedAt = uc.timestamp()
		if err := productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("%w: ya existe un producto llamado %q", domain.ErrDuplicate, product.Name)
			}
			if errors.Is(err, domain.ErrNotFound) {
				return notFound(id)
			}
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, uc.rejected("update_product", err)
	}
	uc.log.Info().Str("product_id", id).Msg("producto actualizado")
	return out, nil
}

// ReceiveStock registra una entrada: saldo + cantidad y movimiento "in", en una sola transacción.
func (uc *StockUseCase) ReceiveStock(ctx context.Context, sess entity.Session, in dto.MovementRequest) (*dto.MovementResponse, error) {
	return uc.registerMovement(ctx, sess, entity.MovementTypeIn, in)
}

// IssueStock registra una salida: falla con domain.ErrInsufficientStock si la cantidad supera el saldo.
func (uc *StockUseCase) IssueStock(ctx context.Context, sess entity.Session, in dto.MovementRequest) (*dto.MovementResponse, error) {
	return uc.registerMovement(ctx, sess, entity.MovementTypeOut, in)
}

// registerMovement bloquea la fila del producto, calcula el nuevo saldo, lo escribe con
// compare-and-swap y agrega el movimiento. Cualquier error hace Rollback de ambos pasos.
func (uc *StockUseCase) registerMovement(ctx context.Context, sess entity.Session, movementType string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	op := "receive_stock"
	if movementType == entity.MovementTypeOut {
		op = "issue_stock"
	}
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if err := dto.Validate(in); err != nil {
		return nil, uc.rejected(op, err)
	}
	qty, err := parseMovementQuantity(in.Quantity)
	if err != nil {
		return nil, uc.rejected(op, err)
	}
	id, err := productID(in.ProductID)
	if err != nil {
		return nil, uc.rejected(op, err)
	}

	var out *dto.MovementResponse
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound(id)
		}
		newQty, err := applyMovement(product.CurrentQuantity, movementType, qty)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, id, product.CurrentQuantity, newQty); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: id,
			Type:      movementType,
			Quantity:  qty,
			Date:      uc.timestamp(),
			CreatedBy: sess.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		product.CurrentQuantity = newQty
		out = toMovementResponse(mov, product)
		return nil
	})
	if err != nil {
		return nil, uc.rejected(op, err)
	}
	uc.log.Info().
		Str("product_id", id).
		Str("type", movementType).
		Int64("quantity", qty).
		Int64("new_quantity", out.NewQuantity).
		Str("user_id", sess.UserID).
		Msg("movimiento aplicado")
	return out, nil
}

// GetProduct obtiene un producto por ID.
func (uc *StockUseCase) GetProduct(ctx context.Context, sess entity.Session, id string) (*dto.ProductResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	id, err := productID(id)
	if err != nil {
		return nil, uc.rejected("get_product", err)
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.rejected("get_product", err)
	}
	if product == nil {
		return nil, notFound(id)
	}
	return toProductResponse(product), nil
}

// ListProducts devuelve todos los productos en orden de creación.
func (uc *StockUseCase) ListProducts(ctx context.Context, sess entity.Session) ([]dto.ProductResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, uc.rejected("list_products", err)
	}
	return toProductResponses(list), nil
}

// ListLowStock devuelve los productos con saldo <= mínimo y mínimo > 0.
func (uc *StockUseCase) ListLowStock(ctx context.Context, sess entity.Session) ([]dto.ProductResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, uc.rejected("list_low_stock", err)
	}
	return toProductResponses(list), nil
}

// ListMovements devuelve el historial de un producto ordenado por fecha.
func (uc *StockUseCase) ListMovements(ctx context.Context, sess entity.Session, id string) ([]dto.MovementResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	id, err := productID(id)
	if err != nil {
		return nil, uc.rejected("list_movements", err)
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.rejected("list_movements", err)
	}
	if product == nil {
		return nil, notFound(id)
	}
	movs, err := uc.movementRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, uc.rejected("list_movements", err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	var running int64
	for _, m := range movs {
		running += m.Signed()
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Date:        m.Date,
			CreatedBy:   m.CreatedBy,
			NewQuantity: running,
			LowStock:    product.MinQuantity > 0 && running <= product.MinQuantity,
		})
	}
	return out, nil
}

// Reconcile recalcula Σentradas − Σsalidas desde el historial y lo compara con el saldo almacenado,
// leyendo ambos dentro de la misma transacción.
func (uc *StockUseCase) Reconcile(ctx context.Context, sess entity.Session, id string) (*dto.ReconcileResponse, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	id, err := productID(id)
	if err != nil {
		return nil, uc.rejected("reconcile", err)
	}
	var out *dto.ReconcileResponse
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound(id)
		}
		movs, err := movRepo.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		r := &dto.ReconcileResponse{ProductID: id, Stored: product.CurrentQuantity, Movements: len(movs), NeverNegative: true}
		for _, m := range movs {
			if m.Type == entity.MovementTypeOut {
				r.TotalOut += m.Quantity
			} else {
				r.TotalIn += m.Quantity
			}
			r.Computed += m.Signed()
			if r.Computed < 0 {
				r.NeverNegative = false
			}
		}
		r.Consistent = r.Computed == r.Stored
		out = r
		return nil
	})
	if err != nil {
		return nil, uc.rejected("reconcile", err)
	}
	if !out.Consistent {
		uc.log.Warn().Str("product_id", id).Int64("stored", out.Stored).Int64("computed", out.Computed).Msg("saldo inconsistente con el historial")
	}
	return out, nil
}

// rejected registra el rechazo con el nivel adecuado y devuelve el mismo error.
func (uc *StockUseCase) rejected(op string, err error) error {
	if errors.Is(err, domain.ErrUnavailable) || domain.Kind(err) == nil {
		uc.log.Error().Err(err).Str("op", op).Msg("fallo de almacenamiento")
	} else {
		uc.log.Debug().Err(err).Str("op", op).Msg("operación rechazada")
	}
	return err
}

func (uc *StockUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}

// normalizeProduct limpia espacios, normaliza el nombre a NFC y valida los campos editables.
func normalizeProduct(in dto.ProductRequest) (dto.ProductRequest, int64, error) {
	if !utf8.ValidString(in.Name) || !utf8.ValidString(in.Description) {
		return in, 0, fmt.Errorf("%w: el nombre y la descripción deben ser texto UTF-8 válido", domain.ErrInvalidInput)
	}
	in.Name = norm.NFC.String(strings.TrimSpace(in.Name))
	in.Description = strings.TrimSpace(in.Description)
	if err := dto.Validate(in); err != nil {
		return in, 0, err
	}
	minQty, err := parseMinQuantity(in.MinQuantity)
	if err != nil {
		return in, 0, err
	}
	return in, minQty, nil
}

// productID valida el identificador. Un ID mal formado no puede existir: se informa como no encontrado.
func productID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: seleccione un producto", domain.ErrInvalidInput)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", notFound(id)
	}
	// Forma canónica: mayúsculas, llaves o urn:uuid deben encontrar el mismo registro en ambos almacenes.
	return parsed.String(), nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CurrentQuantity: p.CurrentQuantity,
		MinQuantity:     p.MinQuantity,
		LowStock:        p.IsLowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toMovementResponse(m *entity.StockMovement, p *entity.Product) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date,
		CreatedBy:   m.CreatedBy,
		NewQuantity: p.CurrentQuantity,
		LowStock:    p.IsLowStock(),
	}
}
