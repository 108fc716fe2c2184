package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/types"
)

type InventoryService interface {
	// RestockLowStock adds the configured increment to every product whose
	// stock sits below the threshold and returns the updated products. The
	// increment is unconditional, so back-to-back runs stack.
	RestockLowStock(ctx context.Context) ([]*types.Product, error)
}

type inventoryService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	threshold   int
	increment   int
}

func NewInventoryService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, threshold, increment int) InventoryService {
	return &inventoryService{
		db:          db,
		log:         log.With("service", "InventoryService"),
		productRepo: productRepo,
		threshold:   threshold,
		increment:   increment,
	}
}

func (is *inventoryService) RestockLowStock(ctx context.Context) ([]*types.Product, error) {
	var updated []*types.Product
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		low, err := is.productRepo.ListBelowStock(inner, is.threshold)
		if err != nil {
			return err
		}
		for _, p := range low {
			p.Stock += is.increment
			if err := is.productRepo.UpdateStock(inner, p.ID, p.Stock); err != nil {
				return err
			}
			updated = append(updated, p)
		}
		return nil
	}); err != nil {
		is.log.Warn("Low stock restock failed", "error", err)
		return nil, apperr.Classify(err)
	}
	is.log.Info("Low stock restock finished", "updated", len(updated))
	return updated, nil
}
