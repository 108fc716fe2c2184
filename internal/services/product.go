package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/types"
	"github.com/yungbote/crm-backend/internal/validation"
)

type ProductInput struct {
	Name string `json:"name"`
	// Price arrives as text and must parse as a strictly positive decimal.
	Price string `json:"price"`
	Stock *int   `json:"stock"`
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*types.Product, error)
	List(ctx context.Context) ([]*types.Product, error)
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo) ProductService {
	return &productService{
		db:          db,
		log:         log.With("service", "ProductService"),
		productRepo: productRepo,
	}
}

func (ps *productService) Create(ctx context.Context, input ProductInput) (*types.Product, error) {
	name := strings.TrimSpace(input.Name)

	if errs := validation.Product(validation.ProductPayload{Name: name, Price: input.Price, Stock: input.Stock}); len(errs) > 0 {
		return nil, apperr.Validation(errs...)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil {
		return nil, apperr.Validation("Invalid price format.")
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}

	product := &types.Product{Name: name, Price: price, Stock: stock}
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ps.productRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*types.Product{product})
		return err
	}); err != nil {
		ps.log.Warn("Product insert failed", "name", name, "error", err)
		return nil, apperr.Classify(err)
	}
	ps.log.Info("Product created", "id", product.ID, "name", product.Name)
	return product, nil
}

func (ps *productService) List(ctx context.Context) ([]*types.Product, error) {
	return ps.productRepo.List(dbctx.Context{Ctx: ctx})
}
