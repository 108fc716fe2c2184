package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/crm-backend/internal/db"
	"github.com/yungbote/crm-backend/internal/handlers"
	"github.com/yungbote/crm-backend/internal/jobs"
	"github.com/yungbote/crm-backend/internal/platform/envutil"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/server"
	"github.com/yungbote/crm-backend/internal/services"
)

func main() {
	// Logger
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	port := envutil.String("PORT", "8080")
	lowStockThreshold := envutil.Int("LOW_STOCK_THRESHOLD", 10)
	restockIncrement := envutil.Int("RESTOCK_INCREMENT", 10)
	reminderWindowDays := envutil.Int("ORDER_REMINDER_WINDOW_DAYS", 7)
	heartbeatLog := envutil.String("HEARTBEAT_LOG_FILE", "/tmp/crm_heartbeat_log.txt")
	reminderLog := envutil.String("ORDER_REMINDER_LOG_FILE", "/tmp/order_reminders_log.txt")
	heartbeatSpec := envutil.String("HEARTBEAT_CRON", "*/5 * * * *")
	reminderSpec := envutil.String("ORDER_REMINDER_CRON", "0 8 * * *")
	restockSpec := envutil.String("RESTOCK_CRON", "0 */12 * * *")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	customerRepo := repos.NewCustomerRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	customerService := services.NewCustomerService(thePG, log, customerRepo)
	productService := services.NewProductService(thePG, log, productRepo)
	orderService := services.NewOrderService(thePG, log, customerRepo, productRepo, orderRepo)
	inventoryService := services.NewInventoryService(thePG, log, productRepo, lowStockThreshold, restockIncrement)
	reportService := services.NewReportService(thePG, log, customerRepo, orderRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CustomerHandler:  customerHandler,
		ProductHandler:   productHandler,
		OrderHandler:     orderHandler,
		InventoryHandler: inventoryHandler,
		ReportHandler:    reportHandler,
	})

	// Scheduled jobs
	log.Info("Setting up scheduled jobs from main...")
	heartbeat := jobs.NewHeartbeat(log, fmt.Sprintf("http://localhost:%s/healthcheck", port), heartbeatLog)
	reminders := jobs.NewOrderReminders(log, orderService, time.Duration(reminderWindowDays)*24*time.Hour, reminderLog)
	scheduler := jobs.NewScheduler(log)
	if err := scheduler.Add(heartbeatSpec, "heartbeat", heartbeat.Run); err != nil {
		log.Error("Could not schedule heartbeat", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Add(reminderSpec, "order_reminders", reminders.Run); err != nil {
		log.Error("Could not schedule order reminders", "error", err)
		os.Exit(1)
	}
	restockJob := func(ctx context.Context) error {
		_, err := inventoryService.RestockLowStock(ctx)
		return err
	}
	if err := scheduler.Add(restockSpec, "restock_low_stock", restockJob); err != nil {
		log.Error("Could not schedule low stock restock", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
