package store

import (
	"sync"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
)

// SyncLedger serializes every operation on a Ledger behind one mutex. Sell is
// a check-then-act on on-hand stock and Receive both reads and removes the
// day's deliveries, so neither can be split across goroutines.
type SyncLedger struct {
	mu     sync.Mutex
	ledger *Ledger
}

// NewSyncLedger wraps l. The caller must not use l directly afterwards.
func NewSyncLedger(l *Ledger) *SyncLedger {
	return &SyncLedger{ledger: l}
}

func (s *SyncLedger) Sell(day domain.Day, sku string, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Sell(day, sku, qty)
}

func (s *SyncLedger) Serve(day domain.Day, shopper Shopper) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Serve(day, shopper)
}

func (s *SyncLedger) DailyTick(day domain.Day) (TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.DailyTick(day)
}

func (s *SyncLedger) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

func (s *SyncLedger) Sales() []domain.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Sales()
}

func (s *SyncLedger) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Orders()
}

func (s *SyncLedger) PendingDeliveries() []domain.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.PendingDeliveries()
}

func (s *SyncLedger) SKUs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SKUs()
}
