package dto

import "time"

// FlowerResponse is the catalog view of one item.
type FlowerResponse struct {
	ID          int64     `json:"id"`
	FloristID   int64     `json:"florist_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	StockStatus string    `json:"stock_status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
