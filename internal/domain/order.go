package domain

import "time"

// Order statuses come from the commerce platform as-is.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// Order is a customer's order from a vendor, with the total already formatted
// by the commerce store's locale rules.
type Order struct {
	ID     int64       `json:"id"`
	Date   time.Time   `json:"date"`
	Total  string      `json:"total"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}
