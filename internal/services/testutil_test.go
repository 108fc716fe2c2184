package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/types"
)

type testDeps struct {
	gdb          *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	productRepo  repos.ProductRepo
	orderRepo    repos.OrderRepo
}

// newTestDB opens a per-test in-memory sqlite database with the same schema
// the postgres bootstrap creates, including the lower(email) unique index,
// so store-level constraint behavior is exercised for real.
func newTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&types.Customer{}, &types.Product{}, &types.Order{}))
	require.NoError(t, gdb.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email_lower
		ON customers (LOWER(email))
	`).Error)

	log, err := logger.New("test")
	require.NoError(t, err)
	return gdb, log
}

func mustCreateCustomer(t *testing.T, gdb *gorm.DB, log *logger.Logger, name, email string) *types.Customer {
	t.Helper()
	customer := &types.Customer{Name: name, Email: email}
	_, err := repos.NewCustomerRepo(gdb, log).Create(dbctx.Background(), []*types.Customer{customer})
	require.NoError(t, err)
	return customer
}

func mustCreateProduct(t *testing.T, gdb *gorm.DB, log *logger.Logger, name, price string, stock int) *types.Product {
	t.Helper()
	product := &types.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	_, err := repos.NewProductRepo(gdb, log).Create(dbctx.Background(), []*types.Product{product})
	require.NoError(t, err)
	return product
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gdb.Model(model).Count(&count).Error)
	return count
}
