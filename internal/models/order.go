package models

// OrderStatusPending is the status given to orders created without one.
const OrderStatusPending = "pending"

// Order is a customer order scheduled for delivery.
type Order struct {
	Base
	Owned
	Customer     string  `gorm:"not null" json:"customer"`
	CustomerID   *string `gorm:"type:uuid" json:"customer_id"`
	Product      string  `gorm:"not null" json:"product"`
	ProductID    *string `gorm:"type:uuid" json:"product_id"`
	DeliveryDate Date    `gorm:"not null;index" json:"delivery_date"`
	Status       string  `gorm:"not null" json:"status"`
	Phone        string  `json:"phone"`
	Value        *int64  `json:"value"`
	Notes        string  `json:"notes"`
}
