package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidPhoneAcceptedShapes(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+1234567890", true},
		{"123-456-7890", true},
		{"1234567", true},
		{"123456789012345", true},
		{"", true}, // absent phone is valid
		{"  +1234567890  ", true},
		{"abc-123-4567", false},
		{"123456", false},          // too short for bare digits
		{"+123456", false},         // too short for international
		{"1234567890123456", false}, // too long
		{"123-45-67890", false},
		{"+12 345 678 90", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, ValidPhone(tc.phone), "phone %q", tc.phone)
	}
}

func TestCustomerRules(t *testing.T) {
	errs := Customer(CustomerPayload{Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"})
	assert.Empty(t, errs)

	errs = Customer(CustomerPayload{Name: "  ", Email: "alice@example.com"})
	assert.Contains(t, errs, "Name is required.")

	errs = Customer(CustomerPayload{Name: "Alice", Email: "not-an-email"})
	assert.Contains(t, errs, "Invalid email format.")

	errs = Customer(CustomerPayload{Name: "Alice", Email: ""})
	assert.Contains(t, errs, "Email is required.")

	errs = Customer(CustomerPayload{Name: "Alice", Email: "alice@example.com", Phone: "abc-123-4567"})
	assert.Contains(t, errs, "Invalid phone format. Accepts +1234567890, 123-456-7890, or digits.")
}

func TestProductRules(t *testing.T) {
	neg := -3
	zero := 0

	assert.Empty(t, Product(ProductPayload{Name: "Laptop", Price: "999.99"}))
	assert.Empty(t, Product(ProductPayload{Name: "Laptop", Price: "999.99", Stock: &zero}))

	errs := Product(ProductPayload{Name: "", Price: "10.00"})
	assert.Contains(t, errs, "Product name is required.")

	errs = Product(ProductPayload{Name: "Laptop", Price: "abc"})
	assert.Contains(t, errs, "Invalid price format.")

	errs = Product(ProductPayload{Name: "Laptop", Price: "0"})
	assert.Contains(t, errs, "Price must be positive.")

	errs = Product(ProductPayload{Name: "Laptop", Price: "-1.50"})
	assert.Contains(t, errs, "Price must be positive.")

	errs = Product(ProductPayload{Name: "Laptop", Price: "10.00", Stock: &neg})
	assert.Contains(t, errs, "Stock cannot be negative.")
}

func TestOrderRules(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	assert.Empty(t, Order(customerID, []uuid.UUID{productID}))
	assert.Contains(t, Order(uuid.Nil, []uuid.UUID{productID}), "Customer ID is required.")
	assert.Contains(t, Order(customerID, nil), "At least one product must be selected.")
}
