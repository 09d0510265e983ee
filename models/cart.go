package models

// CartItem is one service selection in the cart. FinalPrice and TotalDuration are
// snapshotted when the item is added and never recomputed from BasePrice.
type CartItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	BasePrice     float64         `json:"basePrice"`
	Duration      float64         `json:"duration"`
	Category      string          `json:"category"`
	People        int             `json:"people"`
	Boosters      int             `json:"boosters"`
	FinalPrice    float64         `json:"finalPrice"`
	TotalDuration float64         `json:"totalDuration"` // hours
	GroupPricing  map[int]float64 `json:"groupPricing,omitempty"`
}

// CartItemInput is the add-to-cart payload. The store mints the item id from TemplateID.
type CartItemInput struct {
	TemplateID    string          `json:"templateId" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	BasePrice     float64         `json:"basePrice"`
	Duration      float64         `json:"duration"`
	Category      string          `json:"category"`
	People        int             `json:"people"`
	Boosters      int             `json:"boosters"`
	FinalPrice    float64         `json:"finalPrice"`
	TotalDuration float64         `json:"totalDuration"`
	GroupPricing  map[int]float64 `json:"groupPricing,omitempty"`
}

// CartSummary is the checkout hand-off of the current cart.
type CartSummary struct {
	Items         []CartItem `json:"items"`
	TotalPrice    float64    `json:"totalPrice"`
	TotalDuration float64    `json:"totalDuration"`
	ItemCount     int        `json:"itemCount"`
}
