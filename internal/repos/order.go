package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/types"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, order *types.Order) error
	// AppendProducts writes the order↔product association rows.
	AppendProducts(dbc dbctx.Context, order *types.Order, products []*types.Product) error
	// GetAssociatedProducts reads the products joined to the order as
	// persisted, so a total derived from them reflects committed state.
	GetAssociatedProducts(dbc dbctx.Context, orderID uuid.UUID) ([]*types.Product, error)
	UpdateTotal(dbc dbctx.Context, orderID uuid.UUID, total decimal.Decimal) error
	GetByIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*types.Order, error)
	List(dbc dbctx.Context) ([]*types.Order, error)
	ListSince(dbc dbctx.Context, since time.Time) ([]*types.Order, error)
	Count(dbc dbctx.Context) (int64, error)
	ListTotals(dbc dbctx.Context) ([]decimal.Decimal, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (or *orderRepo) handle(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return or.db
}

func (or *orderRepo) Create(dbc dbctx.Context, order *types.Order) error {
	return or.handle(dbc).WithContext(dbc.Ctx).
		Omit("Products", "Customer").
		Create(order).Error
}

func (or *orderRepo) AppendProducts(dbc dbctx.Context, order *types.Order, products []*types.Product) error {
	return or.handle(dbc).WithContext(dbc.Ctx).
		Model(order).
		Omit("Products.*").
		Association("Products").
		Append(products)
}

func (or *orderRepo) GetAssociatedProducts(dbc dbctx.Context, orderID uuid.UUID) ([]*types.Product, error) {
	var results []*types.Product
	if err := or.handle(dbc).WithContext(dbc.Ctx).
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Where("order_products.order_id = ?", orderID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) UpdateTotal(dbc dbctx.Context, orderID uuid.UUID, total decimal.Decimal) error {
	return or.handle(dbc).WithContext(dbc.Ctx).
		Model(&types.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total).Error
}

func (or *orderRepo) GetByIDs(dbc dbctx.Context, orderIDs []uuid.UUID) ([]*types.Order, error) {
	var results []*types.Order
	if len(orderIDs) == 0 {
		return results, nil
	}
	if err := or.handle(dbc).WithContext(dbc.Ctx).
		Preload("Customer").
		Preload("Products").
		Where("id IN ?", orderIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) List(dbc dbctx.Context) ([]*types.Order, error) {
	var results []*types.Order
	if err := or.handle(dbc).WithContext(dbc.Ctx).
		Preload("Customer").
		Preload("Products").
		Order("order_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) ListSince(dbc dbctx.Context, since time.Time) ([]*types.Order, error) {
	var results []*types.Order
	if err := or.handle(dbc).WithContext(dbc.Ctx).
		Preload("Customer").
		Where("order_date >= ?", since).
		Order("order_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := or.handle(dbc).WithContext(dbc.Ctx).
		Model(&types.Order{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (or *orderRepo) ListTotals(dbc dbctx.Context) ([]decimal.Decimal, error) {
	var totals []decimal.Decimal
	if err := or.handle(dbc).WithContext(dbc.Ctx).
		Model(&types.Order{}).
		Pluck("total_amount", &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
