package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/types"
	"github.com/yungbote/crm-backend/internal/validation"
)

type OrderService interface {
	// Create assembles an order: resolves the customer and the full product
	// set up front, then commits the order row, its associations, and the
	// derived total in one transaction. Nothing is persisted on any failure.
	Create(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID) (*types.Order, error)
	List(ctx context.Context) ([]*types.Order, error)
	ListSince(ctx context.Context, since time.Time) ([]*types.Order, error)
}

type orderService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	productRepo  repos.ProductRepo
	orderRepo    repos.OrderRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo, productRepo repos.ProductRepo, orderRepo repos.OrderRepo) OrderService {
	return &orderService{
		db:           db,
		log:          log.With("service", "OrderService"),
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

func (ors *orderService) Create(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID) (*types.Order, error) {
	dbc := dbctx.Context{Ctx: ctx}

	// Customer resolution comes first: an unknown customer is NotFound even
	// when the product list is also bad.
	customers, err := ors.customerRepo.GetByIDs(dbc, []uuid.UUID{customerID})
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if len(customers) == 0 {
		return nil, apperr.NotFound("Invalid customer ID.")
	}
	customer := customers[0]

	if errs := validation.Order(customerID, productIDs); len(errs) > 0 {
		return nil, apperr.Validation(errs...)
	}

	requested := dedupeIDs(productIDs)
	products, err := ors.productRepo.GetByIDs(dbc, requested)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if missing := missingIDs(requested, products); len(missing) > 0 {
		return nil, apperr.Validation("Invalid product ID(s): " + strings.Join(missing, ", "))
	}

	total := sumPrices(products)

	order := &types.Order{
		CustomerID:  customer.ID,
		TotalAmount: total,
		OrderDate:   time.Now().UTC(),
	}
	if err := ors.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := ors.orderRepo.Create(inner, order); err != nil {
			return err
		}
		if err := ors.orderRepo.AppendProducts(inner, order, products); err != nil {
			return err
		}
		// Re-derive the total from the associations as committed. Guards
		// against any drift between the pre-transaction snapshot and the
		// rows actually attached.
		associated, err := ors.orderRepo.GetAssociatedProducts(inner, order.ID)
		if err != nil {
			return err
		}
		recomputed := sumPrices(associated)
		if err := ors.orderRepo.UpdateTotal(inner, order.ID, recomputed); err != nil {
			return err
		}
		order.TotalAmount = recomputed
		return nil
	}); err != nil {
		ors.log.Warn("Order assembly failed", "customer_id", customerID, "error", err)
		return nil, apperr.Classify(err)
	}

	order.Customer = customer
	order.Products = products
	ors.log.Info("Order created", "id", order.ID, "customer_id", order.CustomerID, "total", order.TotalAmount)
	return order, nil
}

func (ors *orderService) List(ctx context.Context) ([]*types.Order, error) {
	return ors.orderRepo.List(dbctx.Context{Ctx: ctx})
}

func (ors *orderService) ListSince(ctx context.Context, since time.Time) ([]*types.Order, error) {
	return ors.orderRepo.ListSince(dbctx.Context{Ctx: ctx}, since)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingIDs returns the requested IDs not present in found, as sorted strings.
func missingIDs(requested []uuid.UUID, found []*types.Product) []string {
	foundSet := make(map[uuid.UUID]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := foundSet[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	sort.Strings(missing)
	return missing
}

func sumPrices(products []*types.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
