package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Product struct {
	ID                 string          `db:"id"`
	CategoryID         string          `db:"category_id"`
	Name               string          `db:"name"`
	Description        string          `db:"description"`
	Price              decimal.Decimal `db:"price"`
	DiscountPercentage int             `db:"discount_percentage"`
	Rating             float64         `db:"rating"`
	StockQuantity      int             `db:"stock_quantity"`
	ImageURL           string          `db:"image_url"`
	Active             bool            `db:"active"`
	CreatedAt          string          `db:"created_at"`
	UpdatedAt          string          `db:"updated_at"`
}

func (p Product) InStock() bool { return p.StockQuantity > 0 }

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
