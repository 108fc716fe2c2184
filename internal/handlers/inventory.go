package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/services"
)

type InventoryHandler struct {
	inventoryService services.InventoryService
}

func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (ih *InventoryHandler) RestockLowStock(c *gin.Context) {
	updated, err := ih.inventoryService.RestockLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":          false,
			"updated_products": []any{},
			"errors":           apperr.Messages(err),
		})
		return
	}
	type restocked struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	out := make([]restocked, 0, len(updated))
	for _, p := range updated {
		out = append(out, restocked{ID: p.ID.String(), Name: p.Name, Stock: p.Stock})
	}
	RespondOK(c, gin.H{
		"success":          true,
		"updated_products": out,
	})
}
