package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (ch *CustomerHandler) Create(c *gin.Context) {
	var req services.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"customer": nil,
			"message":  "Validation failed.",
			"errors":   []string{"invalid request body"},
		})
		return
	}
	customer, err := ch.customerService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"customer": nil,
			"message":  createCustomerMessage(err),
			"errors":   apperr.Messages(err),
		})
		return
	}
	RespondCreated(c, gin.H{
		"customer": customer,
		"message":  "Customer created successfully.",
		"errors":   []string{},
	})
}

func (ch *CustomerHandler) BulkCreate(c *gin.Context) {
	var req struct {
		Customers []services.CustomerInput `json:"customers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"customers": []any{},
			"errors":    []string{"invalid request body"},
		})
		return
	}
	// Partial success is the contract: the response always carries both the
	// created subsequence and the per-record errors.
	created, errs := ch.customerService.BulkCreate(c.Request.Context(), req.Customers)
	RespondOK(c, gin.H{
		"customers": created,
		"errors":    errs,
	})
}

func (ch *CustomerHandler) List(c *gin.Context) {
	customers, err := ch.customerService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": apperr.Messages(err)})
		return
	}
	RespondOK(c, gin.H{"customers": customers})
}

func createCustomerMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindValidation:
			return "Validation failed."
		case apperr.KindConflict:
			return "Email already exists."
		}
	}
	return "Error creating customer."
}
