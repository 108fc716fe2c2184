package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/crm-backend/internal/platform/dbctx"
	"github.com/yungbote/crm-backend/internal/platform/logger"
	"github.com/yungbote/crm-backend/internal/types"
)

type CustomerRepo interface {
	Create(dbc dbctx.Context, customers []*types.Customer) ([]*types.Customer, error)
	GetByIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.Customer, error)
	// EmailExists reports whether any customer holds the email, compared
	// case-insensitively. Advisory only; the lower(email) unique index is
	// the final guard under concurrent inserts.
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context) ([]*types.Customer, error)
	Count(dbc dbctx.Context) (int64, error)
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return &customerRepo{db: db, log: baseLog.With("repo", "CustomerRepo")}
}

func (cr *customerRepo) handle(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return cr.db
}

func (cr *customerRepo) Create(dbc dbctx.Context, customers []*types.Customer) ([]*types.Customer, error) {
	if len(customers) == 0 {
		return []*types.Customer{}, nil
	}
	if err := cr.handle(dbc).WithContext(dbc.Ctx).Create(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (cr *customerRepo) GetByIDs(dbc dbctx.Context, customerIDs []uuid.UUID) ([]*types.Customer, error) {
	var results []*types.Customer
	if len(customerIDs) == 0 {
		return results, nil
	}
	if err := cr.handle(dbc).WithContext(dbc.Ctx).
		Where("id IN ?", customerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := cr.handle(dbc).WithContext(dbc.Ctx).
		Model(&types.Customer{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *customerRepo) List(dbc dbctx.Context) ([]*types.Customer, error) {
	var results []*types.Customer
	if err := cr.handle(dbc).WithContext(dbc.Ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := cr.handle(dbc).WithContext(dbc.Ctx).
		Model(&types.Customer{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
