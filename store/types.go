// Package store holds a small shop domain used by the analyzer, automapper
// and CLI tests as a realistic source package.
package store

import (
	"time"
)

// Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Address has no identity of its own and maps as a component.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	FullName     string   `json:"full_name"`
	Address      Address  `json:"address"`
	Billing      *Address `json:"billing,omitempty"`
	IsActive     bool     `json:"is_active"`
	Orders       []*Order `json:"orders"`
	PasswordHash string   `fluentmap:"-"    json:"-"`

	notes string
}

// Order represents a transaction made by a customer.
type Order struct {
	ID         int64       `json:"id"`
	Customer   *Customer   `json:"customer"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"`
	OrderedAt  time.Time   `json:"ordered_at"`
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ID        int64    `json:"id"`
	Order     *Order   `json:"order"`
	Product   *Product `json:"product"`
	Quantity  int      `json:"quantity"`
	UnitPrice int64    `json:"unit_price"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
