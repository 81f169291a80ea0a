package domain

// CatalogItem is seeded once at startup and read-only afterwards.
type CatalogItem struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	Price    float64 `db:"price" json:"price"`
	Brand    string  `db:"brand" json:"brand"`
	Size     string  `db:"size" json:"size"`
	Units    string  `db:"units" json:"units"`
	Tags     string  `db:"tags" json:"tags"` // lowercase, comma-joined
}

// CartLine carries the name and unit price captured at add-time, so a
// later catalog edit never changes what the customer was quoted.
type CartLine struct {
	ItemID    string  `db:"item_id" json:"itemId"`
	Name      string  `db:"name" json:"name"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	Qty       int     `db:"qty" json:"qty"`
	Notes     string  `db:"notes" json:"notes,omitempty"`
}

type Order struct {
	ID        string      `db:"order_id" json:"orderId"`
	CreatedAt string      `db:"created_at" json:"createdAt"`
	UpdatedAt string      `db:"updated_at" json:"updatedAt"`
	Customer  string      `db:"customer_name" json:"customer"`
	Address   string      `db:"address" json:"address"`
	Total     float64     `db:"total" json:"total"`
	Status    Status      `db:"status" json:"status"`
	Lines     []OrderLine `db:"-" json:"lines,omitempty"`
}

// OrderLine is the checkout-time snapshot of a CartLine.
type OrderLine struct {
	ItemID    string  `db:"item_id" json:"itemId"`
	Name      string  `db:"name" json:"name"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	Qty       int     `db:"qty" json:"qty"`
	Notes     string  `db:"notes" json:"notes,omitempty"`
}
