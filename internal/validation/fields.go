// Package validation holds the stateless per-field rules run before any
// write. Functions return human-readable messages and perform no I/O.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Accepted phone shapes, matched with any-of semantics: an international
// form, a dashed US form, and bare digits.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+\d{7,15}$`),
	regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),
	regexp.MustCompile(`^\d{7,15}$`),
}

type CustomerPayload struct {
	Name  string
	Email string
	Phone string
}

type ProductPayload struct {
	Name  string
	Price string
	Stock *int
}

func ValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// ValidPhone treats an absent phone as valid; a present value must match at
// least one accepted pattern.
func ValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	for _, re := range phonePatterns {
		if re.MatchString(phone) {
			return true
		}
	}
	return false
}

func Customer(p CustomerPayload) []string {
	var errs []string
	name := strings.TrimSpace(p.Name)
	email := strings.TrimSpace(p.Email)
	if name == "" {
		errs = append(errs, "Name is required.")
	}
	if email == "" {
		errs = append(errs, "Email is required.")
	} else if !ValidEmail(email) {
		errs = append(errs, "Invalid email format.")
	}
	if p.Phone != "" && !ValidPhone(p.Phone) {
		errs = append(errs, "Invalid phone format. Accepts +1234567890, 123-456-7890, or digits.")
	}
	return errs
}

func Product(p ProductPayload) []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "Product name is required.")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil {
		errs = append(errs, "Invalid price format.")
	} else if !price.IsPositive() {
		errs = append(errs, "Price must be positive.")
	}
	if p.Stock != nil && *p.Stock < 0 {
		errs = append(errs, "Stock cannot be negative.")
	}
	return errs
}

func Order(customerID uuid.UUID, productIDs []uuid.UUID) []string {
	var errs []string
	if customerID == uuid.Nil {
		errs = append(errs, "Customer ID is required.")
	}
	if len(productIDs) == 0 {
		errs = append(errs, "At least one product must be selected.")
	}
	return errs
}
