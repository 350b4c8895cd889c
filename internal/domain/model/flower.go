package model

import "time"

// StockStatus tells whether a flower can currently be ordered.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// ValidStockStatus reports whether s names a known stock status.
func ValidStockStatus(s string) bool {
	switch StockStatus(s) {
	case StockInStock, StockOutOfStock:
		return true
	}
	return false
}

// Flower is a sellable catalog item owned by exactly one florist.
type Flower struct {
	ID          int64
	FloristID   int64
	Name        string
	Description string
	Price       float64
	ImageURL    string
	StockStatus StockStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
