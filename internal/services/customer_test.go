package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/types"
)

func newCustomerService(t *testing.T) (CustomerService, *testDeps) {
	t.Helper()
	gdb, log := newTestDB(t)
	customerRepo := repos.NewCustomerRepo(gdb, log)
	svc := NewCustomerService(gdb, log, customerRepo)
	return svc, &testDeps{gdb: gdb, log: log, customerRepo: customerRepo}
}

func TestCreateCustomer(t *testing.T) {
	svc, deps := newCustomerService(t)

	customer, err := svc.Create(context.Background(), CustomerInput{
		Name:  "  Alice  ",
		Email: "alice@example.com",
		Phone: "+1234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.NotZero(t, customer.ID)
	assert.EqualValues(t, 1, countRows(t, deps.gdb, &types.Customer{}))
}

func TestCreateCustomerValidationFailures(t *testing.T) {
	svc, deps := newCustomerService(t)

	cases := []struct {
		name    string
		input   CustomerInput
		wantMsg string
	}{
		{"bad email", CustomerInput{Name: "Alice", Email: "nope"}, "Invalid email format."},
		{"bad phone", CustomerInput{Name: "Alice", Email: "alice@example.com", Phone: "abc-123-4567"}, "Invalid phone format. Accepts +1234567890, 123-456-7890, or digits."},
		{"empty name", CustomerInput{Name: "   ", Email: "alice@example.com"}, "Name is required."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer, err := svc.Create(context.Background(), tc.input)
			require.Error(t, err)
			assert.Nil(t, customer)
			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Messages, tc.wantMsg)
		})
	}
	assert.EqualValues(t, 0, countRows(t, deps.gdb, &types.Customer{}))
}

func TestCreateCustomerDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newCustomerService(t)

	_, err := svc.Create(context.Background(), CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	customer, err := svc.Create(context.Background(), CustomerInput{Name: "Imposter", Email: "ALICE@Example.COM"})
	require.Error(t, err)
	assert.Nil(t, customer)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
	assert.Contains(t, appErr.Messages, "Email already exists.")
}

// The advisory pre-check can race; the lower(email) unique index is the final
// guard. Inserting around the checker must still surface a conflict.
func TestStoreConstraintGuardsEmailUniqueness(t *testing.T) {
	_, deps := newCustomerService(t)

	_, err := deps.customerRepo.Create(dbctx.Background(), []*types.Customer{{Name: "Alice", Email: "alice@example.com"}})
	require.NoError(t, err)

	_, err = deps.customerRepo.Create(dbctx.Background(), []*types.Customer{{Name: "Race", Email: "Alice@Example.com"}})
	require.Error(t, err)
	classified := apperr.Classify(err)
	assert.Equal(t, apperr.KindConflict, classified.Kind)
	assert.EqualValues(t, 1, countRows(t, deps.gdb, &types.Customer{}))
}

func TestBulkCreatePartialSuccess(t *testing.T) {
	svc, deps := newCustomerService(t)

	created, errs := svc.BulkCreate(context.Background(), []CustomerInput{
		{Name: "One", Email: "one@example.com"},
		{Name: "Two", Email: "two@example.com"},
		{Name: "Three", Email: "not-an-email"},
		{Name: "Four", Email: "four@example.com"},
		{Name: "Five", Email: "five@example.com"},
	})

	require.Len(t, created, 4)
	assert.Equal(t, "one@example.com", created[0].Email)
	assert.Equal(t, "two@example.com", created[1].Email)
	assert.Equal(t, "four@example.com", created[2].Email)
	assert.Equal(t, "five@example.com", created[3].Email)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "record #3 (email: not-an-email)")
	assert.Contains(t, errs[0], "invalid email format.")

	assert.EqualValues(t, 4, countRows(t, deps.gdb, &types.Customer{}))
}

func TestBulkCreateSeesEarlierRecordsInBatch(t *testing.T) {
	svc, deps := newCustomerService(t)

	created, errs := svc.BulkCreate(context.Background(), []CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Alias", Email: "Alice@example.com"},
	})

	require.Len(t, created, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "record #2 (email: Alice@example.com)")
	assert.Contains(t, errs[0], "email already exists.")
	assert.EqualValues(t, 1, countRows(t, deps.gdb, &types.Customer{}))
}

// Simulates losing the check-then-insert race: a rival row with the same
// email lands after the advisory pre-check has passed but before the insert,
// so the lower(email) unique index rejects the record at the store level and
// the failure is reported as an integrity error for that record only.
func TestBulkCreateLosesUniquenessRaceToStoreConstraint(t *testing.T) {
	svc, deps := newCustomerService(t)

	raced := false
	err := deps.gdb.Callback().Create().Before("gorm:create").Register("rival_customer_insert", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "customers" {
			return
		}
		raced = true
		rival := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO customers (id, name, email, phone, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.New().String(), "Rival", "race@example.com", "", time.Now(), time.Now(),
		)
		if rival.Error != nil {
			_ = tx.AddError(rival.Error)
		}
	})
	require.NoError(t, err)

	created, errs := svc.BulkCreate(context.Background(), []CustomerInput{
		{Name: "Loser", Email: "race@example.com"},
		{Name: "Clean", Email: "clean@example.com"},
	})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "record #1 (email: race@example.com)")
	assert.Contains(t, errs[0], "integrity error -")

	// Record #1 rolled back entirely (the rival row shared its transaction);
	// record #2 was unaffected.
	require.Len(t, created, 1)
	assert.Equal(t, "clean@example.com", created[0].Email)
	assert.EqualValues(t, 1, countRows(t, deps.gdb, &types.Customer{}))
}

func TestBulkCreateMissingFields(t *testing.T) {
	svc, _ := newCustomerService(t)

	created, errs := svc.BulkCreate(context.Background(), []CustomerInput{
		{Name: "", Email: "ghost@example.com"},
		{Name: "Real", Email: "real@example.com"},
	})

	require.Len(t, created, 1)
	assert.Equal(t, "real@example.com", created[0].Email)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "record #1 (email: ghost@example.com)")
	assert.Contains(t, errs[0], "name and email are required.")
}
