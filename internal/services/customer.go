package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/repos"
	"github.com/yungbote/crm-backend/internal/types"
	"github.com/yungbote/crm-backend/internal/validation"
)

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CustomerService interface {
	// Create validates the payload, pre-checks email uniqueness, and inserts
	// the customer in its own transaction. All-or-nothing.
	Create(ctx context.Context, input CustomerInput) (*types.Customer, error)
	// BulkCreate processes records in input order with per-record failure
	// isolation: each insert is its own transaction, and a failed record
	// neither rolls back earlier successes nor blocks later attempts.
	BulkCreate(ctx context.Context, inputs []CustomerInput) ([]*types.Customer, []string)
	List(ctx context.Context) ([]*types.Customer, error)
}

type customerService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
}

func NewCustomerService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo) CustomerService {
	return &customerService{
		db:           db,
		log:          log.With("service", "CustomerService"),
		customerRepo: customerRepo,
	}
}

func (cs *customerService) Create(ctx context.Context, input CustomerInput) (*types.Customer, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	if errs := validation.Customer(validation.CustomerPayload{Name: name, Email: email, Phone: phone}); len(errs) > 0 {
		return nil, apperr.Validation(errs...)
	}

	exists, err := cs.customerRepo.EmailExists(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	if exists {
		return nil, apperr.Conflict("Email already exists.")
	}

	customer := &types.Customer{Name: name, Email: email, Phone: phone}
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := cs.customerRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*types.Customer{customer})
		return err
	}); err != nil {
		cs.log.Warn("Customer insert failed", "email", email, "error", err)
		return nil, apperr.Classify(err)
	}
	cs.log.Info("Customer created", "id", customer.ID, "email", customer.Email)
	return customer, nil
}

func (cs *customerService) BulkCreate(ctx context.Context, inputs []CustomerInput) ([]*types.Customer, []string) {
	created := []*types.Customer{}
	errs := []string{}

	for idx, input := range inputs {
		name := strings.TrimSpace(input.Name)
		email := strings.TrimSpace(input.Email)
		phone := strings.TrimSpace(input.Phone)
		recordID := fmt.Sprintf("record #%d (email: %s)", idx+1, email)

		if name == "" || email == "" {
			errs = append(errs, recordID+": name and email are required.")
			continue
		}
		if !validation.ValidEmail(email) {
			errs = append(errs, recordID+": invalid email format.")
			continue
		}
		if !validation.ValidPhone(phone) {
			errs = append(errs, recordID+": invalid phone format.")
			continue
		}

		// Sees whatever has committed so far, including earlier records of
		// this batch. Concurrent batches still race; the unique index on
		// lower(email) decides the loser.
		exists, err := cs.customerRepo.EmailExists(dbctx.Context{Ctx: ctx}, email)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: unexpected error - %v", recordID, err))
			continue
		}
		if exists {
			errs = append(errs, recordID+": email already exists.")
			continue
		}

		customer := &types.Customer{Name: name, Email: email, Phone: phone}
		if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := cs.customerRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*types.Customer{customer})
			return err
		}); err != nil {
			classified := apperr.Classify(err)
			switch classified.Kind {
			case apperr.KindConflict, apperr.KindIntegrity:
				errs = append(errs, fmt.Sprintf("%s: integrity error - %v", recordID, err))
			default:
				errs = append(errs, fmt.Sprintf("%s: unexpected error - %v", recordID, err))
			}
			continue
		}
		created = append(created, customer)
	}

	cs.log.Info("Bulk customer import finished", "created", len(created), "failed", len(errs))
	return created, errs
}

func (cs *customerService) List(ctx context.Context) ([]*types.Customer, error) {
	return cs.customerRepo.List(dbctx.Context{Ctx: ctx})
}
