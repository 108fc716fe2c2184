package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/services"
)

// OrderReminders scans orders placed inside the lookback window and appends
// one reminder line per order to the reminder log.
type OrderReminders struct {
	log          *logger.Logger
	orderService services.OrderService
	window       time.Duration
	logFile      string
}

func NewOrderReminders(log *logger.Logger, orderService services.OrderService, window time.Duration, logFile string) *OrderReminders {
	return &OrderReminders{
		log:          log.With("job", "OrderReminders"),
		orderService: orderService,
		window:       window,
		logFile:      logFile,
	}
}

func (r *OrderReminders) Run(ctx context.Context) error {
	since := time.Now().UTC().Add(-r.window)
	orders, err := r.orderService.ListSince(ctx, since)
	if err != nil {
		r.log.Warn("Order reminder scan failed", "error", err)
		return err
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	for _, order := range orders {
		email := ""
		if order.Customer != nil {
			email = order.Customer.Email
		}
		line := fmt.Sprintf("[%s] Reminder sent for order %s (%s)\n", timestamp, order.ID, email)
		if err := appendLine(r.logFile, line); err != nil {
			r.log.Warn("Reminder write failed", "file", r.logFile, "error", err)
			return err
		}
	}
	r.log.Info("Order reminders processed", "count", len(orders))
	return nil
}
