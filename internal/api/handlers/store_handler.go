package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/storebrain/backend-go/internal/store"
	"github.com/gin-gonic/gin"
)

// StoreHandler serves read-only views of the live store.
type StoreHandler struct {
	store *store.SyncLedger
}

func NewStoreHandler(st *store.SyncLedger) *StoreHandler {
	return &StoreHandler{store: st}
}

func (h *StoreHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *StoreHandler) GetOrders(c *gin.Context) {
	orders := h.store.Orders()
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetSales returns the most recent sales, newest last. limit defaults to 100.
func (h *StoreHandler) GetSales(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	sales := h.store.Sales()
	total := len(sales)
	if total > limit {
		sales = sales[total-limit:]
	}
	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"total": total,
	})
}

func (h *StoreHandler) GetPendingDeliveries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deliveries": h.store.PendingDeliveries()})
}
