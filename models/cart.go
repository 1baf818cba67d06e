package models

// CartItem is one product-quantity line in the cart. Name, UnitPrice and
// Image are copied from the catalog when the item is first added, so later
// catalog changes do not affect items already in the cart.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// CartTotals summarizes the cart: total quantity and amount due.
type CartTotals struct {
	ItemCount int     `json:"item_count"`
	AmountDue float64 `json:"amount_due"`
}
