package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/storebrain/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.service.Runs(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, "failed to list runs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *ReportHandler) GetLatest(c *gin.Context) {
	runID := strings.TrimSpace(c.Param("run"))
	report, err := h.service.Latest(c.Request.Context(), runID)
	if err != nil {
		writeServiceError(c, "failed to fetch latest report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetDays(c *gin.Context) {
	runID := strings.TrimSpace(c.Param("run"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	days, err := h.service.Days(c.Request.Context(), runID, limit)
	if err != nil {
		writeServiceError(c, "failed to fetch days", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id": runID,
		"days":   days,
	})
}

func (h *ReportHandler) GetOrders(c *gin.Context) {
	runID := strings.TrimSpace(c.Param("run"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	orders, err := h.service.Orders(c.Request.Context(), runID, limit)
	if err != nil {
		writeServiceError(c, "failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id": runID,
		"orders": orders,
	})
}

func writeServiceError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrReportsUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
