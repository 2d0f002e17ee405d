// backend-go/internal/domain/models.go
package domain

// Sale is one successful sale recorded in the sales log.
type Sale struct {
	Day      Day    `json:"day" db:"day"`
	SKU      string `json:"sku" db:"sku"`
	Quantity int    `json:"quantity" db:"quantity"`
}

// Order is one replenishment order recorded in the orders log.
type Order struct {
	Day      Day     `json:"day" db:"day"`
	SKU      string  `json:"sku" db:"sku"`
	Quantity int     `json:"quantity" db:"quantity"`
	Cost     float64 `json:"cost" db:"cost"`
	Arrival  Day     `json:"arrival" db:"arrival"`
}

// Delivery is a quantity of one SKU due on a given day.
type Delivery struct {
	Arrival  Day    `json:"arrival"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Snapshot is a read-only projection of the ledger. Currency fields are
// rounded to two decimal places.
type Snapshot struct {
	OnHand         map[string]int     `json:"on_hand"`
	OnOrder        map[string]int     `json:"on_order"`
	DemandEstimate map[string]float64 `json:"demand_estimate"`
	Price          map[string]float64 `json:"price"`
	Revenue        float64            `json:"revenue"`
	Expenses       float64            `json:"expenses"`
	Profit         float64            `json:"profit"`
	InventoryValue float64            `json:"inventory_value"`
}

// DayReport summarizes one simulated day after its tick.
type DayReport struct {
	RunID     string     `json:"run_id"`
	Day       Day        `json:"day"`
	Attempts  int        `json:"attempts"`
	StockOuts int        `json:"stock_outs"`
	Received  []Delivery `json:"received"`
	Placed    []Order    `json:"placed"`
	Snapshot  Snapshot   `json:"snapshot"`
}

// SKUDayRow is the per-SKU row persisted for a day report.
type SKUDayRow struct {
	RunID          string  `json:"run_id" db:"run_id"`
	Day            string  `json:"day" db:"day"`
	SKU            string  `json:"sku" db:"sku"`
	OnHand         int     `json:"on_hand" db:"on_hand"`
	OnOrder        int     `json:"on_order" db:"on_order"`
	DemandEstimate float64 `json:"demand_estimate" db:"demand_estimate"`
	Price          float64 `json:"price" db:"price"`
}

// DayTotals is the store-level row persisted for a day report.
type DayTotals struct {
	RunID          string  `json:"run_id" db:"run_id"`
	Day            string  `json:"day" db:"day"`
	Attempts       int     `json:"attempts" db:"attempts"`
	StockOuts      int     `json:"stock_outs" db:"stock_outs"`
	Revenue        float64 `json:"revenue" db:"revenue"`
	Expenses       float64 `json:"expenses" db:"expenses"`
	Profit         float64 `json:"profit" db:"profit"`
	InventoryValue float64 `json:"inventory_value" db:"inventory_value"`
}

// OrderRow is the persisted form of an order within a run.
type OrderRow struct {
	RunID    string  `json:"run_id" db:"run_id"`
	Day      string  `json:"day" db:"day"`
	SKU      string  `json:"sku" db:"sku"`
	Quantity int     `json:"quantity" db:"quantity"`
	Cost     float64 `json:"cost" db:"cost"`
	Arrival  string  `json:"arrival" db:"arrival"`
}
