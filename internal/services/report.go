package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
)

type Stats struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

type ReportService interface {
	Stats(ctx context.Context) (*Stats, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	orderRepo    repos.OrderRepo
}

func NewReportService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo, orderRepo repos.OrderRepo) ReportService {
	return &reportService{
		db:           db,
		log:          log.With("service", "ReportService"),
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

func (rs *reportService) Stats(ctx context.Context) (*Stats, error) {
	dbc := dbctx.Context{Ctx: ctx}
	customers, err := rs.customerRepo.Count(dbc)
	if err != nil {
		return nil, err
	}
	orders, err := rs.orderRepo.Count(dbc)
	if err != nil {
		return nil, err
	}
	totals, err := rs.orderRepo.ListTotals(dbc)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t)
	}
	return &Stats{TotalCustomers: customers, TotalOrders: orders, TotalRevenue: revenue}, nil
}
