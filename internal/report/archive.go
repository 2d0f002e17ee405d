package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
)

// Uploader stores an object under a key.
type Uploader interface {
	UploadObject(ctx context.Context, key string, data []byte) error
}

// OrdersKey is the object key of a run's orders export.
func OrdersKey(runID string) string {
	return fmt.Sprintf("runs/%s/orders.csv", runID)
}

// ArchiveOrders uploads the orders log of a run as CSV and returns its key.
func ArchiveOrders(ctx context.Context, up Uploader, runID string, orders []domain.Order) (string, error) {
	var buf bytes.Buffer
	if err := WriteOrdersCSV(&buf, orders); err != nil {
		return "", err
	}
	key := OrdersKey(runID)
	if err := up.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("archive orders for run %s: %w", runID, err)
	}
	return key, nil
}
