package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (ph *ProductHandler) Create(c *gin.Context) {
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"product": nil,
			"errors":  []string{"invalid request body"},
		})
		return
	}
	product, err := ph.productService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"product": nil,
			"errors":  apperr.Messages(err),
		})
		return
	}
	RespondCreated(c, gin.H{
		"product": product,
		"errors":  []string{},
	})
}

func (ph *ProductHandler) List(c *gin.Context) {
	products, err := ph.productService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": apperr.Messages(err)})
		return
	}
	RespondOK(c, gin.H{"products": products})
}
