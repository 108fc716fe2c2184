package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (oh *OrderHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID string   `json:"customer_id"`
		ProductIDs []string `json:"product_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"order":  nil,
			"errors": []string{"invalid request body"},
		})
		return
	}

	customerID, err := uuid.Parse(strings.TrimSpace(req.CustomerID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"order":  nil,
			"errors": []string{"Invalid customer ID."},
		})
		return
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	var malformed []string
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			malformed = append(malformed, strings.TrimSpace(raw))
			continue
		}
		productIDs = append(productIDs, id)
	}
	if len(malformed) > 0 {
		sort.Strings(malformed)
		c.JSON(http.StatusBadRequest, gin.H{
			"order":  nil,
			"errors": []string{"Invalid product ID(s): " + strings.Join(malformed, ", ")},
		})
		return
	}

	order, err := oh.orderService.Create(c.Request.Context(), customerID, productIDs)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"order":  nil,
			"errors": apperr.Messages(err),
		})
		return
	}
	RespondCreated(c, gin.H{
		"order":  order,
		"errors": []string{},
	})
}

func (oh *OrderHandler) List(c *gin.Context) {
	orders, err := oh.orderService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": apperr.Messages(err)})
		return
	}
	RespondOK(c, gin.H{"orders": orders})
}
