package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/types"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error)
	GetByIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.Product, error)
	ListBelowStock(dbc dbctx.Context, threshold int) ([]*types.Product, error)
	UpdateStock(dbc dbctx.Context, productID uuid.UUID, stock int) error
	List(dbc dbctx.Context) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (pr *productRepo) handle(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return pr.db
}

func (pr *productRepo) Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error) {
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := pr.handle(dbc).WithContext(dbc.Ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.Product, error) {
	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := pr.handle(dbc).WithContext(dbc.Ctx).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) ListBelowStock(dbc dbctx.Context, threshold int) ([]*types.Product, error) {
	var results []*types.Product
	if err := pr.handle(dbc).WithContext(dbc.Ctx).
		Where("stock < ?", threshold).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) UpdateStock(dbc dbctx.Context, productID uuid.UUID, stock int) error {
	return pr.handle(dbc).WithContext(dbc.Ctx).
		Model(&types.Product{}).
		Where("id = ?", productID).
		Update("stock", stock).Error
}

func (pr *productRepo) List(dbc dbctx.Context) ([]*types.Product, error) {
	var results []*types.Product
	if err := pr.handle(dbc).WithContext(dbc.Ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
