package store

import (
	"container/heap"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
)

// Pipeline is the schedule of pending deliveries, bucketed by arrival day.
// A min-heap of bucket days lets Receive take everything due without
// scanning future days.
type Pipeline struct {
	buckets map[domain.Day][]domain.Delivery
	days    dayHeap
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{buckets: make(map[domain.Day][]domain.Delivery)}
}

// Schedule queues qty units of sku to arrive on the given day.
func (p *Pipeline) Schedule(arrival domain.Day, sku string, qty int) {
	if _, ok := p.buckets[arrival]; !ok {
		heap.Push(&p.days, arrival)
	}
	p.buckets[arrival] = append(p.buckets[arrival], domain.Delivery{
		Arrival:  arrival,
		SKU:      sku,
		Quantity: qty,
	})
}

// Receive removes and returns every delivery due on or before today, oldest
// bucket first. Each bucket is returned exactly once; calling Receive again
// for the same day returns nothing.
func (p *Pipeline) Receive(today domain.Day) []domain.Delivery {
	var due []domain.Delivery
	for p.days.Len() > 0 && !p.days[0].After(today) {
		day := heap.Pop(&p.days).(domain.Day)
		due = append(due, p.buckets[day]...)
		delete(p.buckets, day)
	}
	return due
}

// Pending returns every scheduled delivery ordered by arrival day.
func (p *Pipeline) Pending() []domain.Delivery {
	days := make(dayHeap, len(p.days))
	copy(days, p.days)
	var out []domain.Delivery
	for days.Len() > 0 {
		day := heap.Pop(&days).(domain.Day)
		out = append(out, p.buckets[day]...)
	}
	return out
}

// Len is the number of arrival days still pending.
func (p *Pipeline) Len() int {
	return len(p.buckets)
}

type dayHeap []domain.Day

func (h dayHeap) Len() int           { return len(h) }
func (h dayHeap) Less(i, j int) bool { return h[i].Before(h[j]) }
func (h dayHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *dayHeap) Push(x any) {
	*h = append(*h, x.(domain.Day))
}

func (h *dayHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
