package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/crm-backend/internal/platform/apperr"
	"github.com/yungbote/crm-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (rh *ReportHandler) Stats(c *gin.Context) {
	stats, err := rh.reportService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": apperr.Messages(err)})
		return
	}
	RespondOK(c, gin.H{"stats": stats})
}
