package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Platform string

const (
	PlatformApp      Platform = "App"
	PlatformTrendyol Platform = "Trendyol"
	PlatformShopify  Platform = "Shopify"
)

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID          uuid.UUID   `json:"id"`
	OrderNumber string      `json:"order_number"`
	CheckoutID  string      `json:"checkout_id,omitempty"`
	Customer    string      `json:"customer"`
	Platform    Platform    `json:"platform"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Currency    string      `json:"currency"`
	Items       []OrderItem `json:"items"`
	PlacedAt    time.Time   `json:"placed_at"`
}

type CustomerTier string

const (
	CustomerVIP     CustomerTier = "VIP"
	CustomerRegular CustomerTier = "Regular"
	CustomerNew     CustomerTier = "New"
)

type Customer struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	TotalSpent    float64      `json:"total_spent"`
	LastOrderDate string       `json:"last_order_date"`
	Tier          CustomerTier `json:"tier"`
	Platform      Platform     `json:"platform"`
}
