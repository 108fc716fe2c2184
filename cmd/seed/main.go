package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/crm-backend/internal/db"
	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/envutil"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/services"
	"github.com/yungbote/crm-backend/internal/types"
)

// Seeds demo data: two customers, three products, one order. Wipes existing
// rows first, so keep it away from production databases.
func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	log.Info("Deleting existing demo data (orders, customers, products)...")
	for _, stmt := range []string{
		"DELETE FROM order_products",
		"DELETE FROM orders",
		"DELETE FROM customers",
		"DELETE FROM products",
	} {
		if err := thePG.Exec(stmt).Error; err != nil {
			log.Error("Demo data wipe failed", "stmt", stmt, "error", err)
			os.Exit(1)
		}
	}

	customerRepo := repos.NewCustomerRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)

	customers, err := customerRepo.Create(dbc, []*types.Customer{
		{Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"},
		{Name: "Bob", Email: "bob@example.com", Phone: "123-456-7890"},
	})
	if err != nil {
		log.Error("Customer seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("Created customers", "count", len(customers))

	products, err := productRepo.Create(dbc, []*types.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10},
		{Name: "Mouse", Price: decimal.RequireFromString("25.50"), Stock: 100},
		{Name: "Keyboard", Price: decimal.RequireFromString("45.00"), Stock: 50},
	})
	if err != nil {
		log.Error("Product seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("Created products", "count", len(products))

	orderService := services.NewOrderService(thePG, log, customerRepo, productRepo, orderRepo)
	order, err := orderService.Create(ctx, customers[0].ID, []uuid.UUID{products[0].ID, products[1].ID})
	if err != nil {
		log.Error("Order seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("Created order", "id", order.ID, "total", order.TotalAmount)
	log.Info("Seed complete")
}
