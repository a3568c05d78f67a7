package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"   // placed, awaiting packing
	OrderStatusPacked    OrderStatus = "Packed"    // packed and ready for dispatch
	OrderStatusDelivered OrderStatus = "Delivered" // customer received the items
	OrderStatusCancelled OrderStatus = "Cancelled"

	PaymentStatusPending PaymentStatus = "Pending" // paid on delivery, or not yet settled
	PaymentStatusPaid    PaymentStatus = "Paid"
)

const (
	PaymentMethodCOD        = "Cash on Delivery"
	PaymentMethodUPI        = "UPI"
	PaymentMethodCard       = "Card"
	PaymentMethodNetBanking = "Net Banking"
)

// Order is an immutable snapshot of the cart plus shipping and payment info,
// created once at checkout. Only Status and PaymentStatus mutate afterwards.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	OrderRef     string      `gorm:"uniqueIndex" json:"order_ref"`
	UserID       string      `gorm:"index" json:"user_id"` // empty for anonymous checkout
	CustomerName string      `gorm:"not null" json:"customerName"`
	Email        string      `gorm:"index" json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"` // flattened "street, city - pincode"
	Instructions string      `json:"instructions"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`

	PaymentMethod  string        `json:"paymentMethod"`
	PaymentStatus  PaymentStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"paymentStatus"`
	PaymentDetails string        `json:"paymentDetails"` // method-specific, e.g. card last 4 digits

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	OrderID      uint    `gorm:"index" json:"-"`
	ProductID    uint    `json:"id"`
	ProductName  string  `json:"name"`
	ProductImage string  `json:"imageUrl"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// ValidOrderStatus reports whether s is one of the four known statuses.
// Transitions themselves are unguarded: any status can be set from any other.
func ValidOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPacked, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

func ValidPaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid:
		return PaymentStatus(s), true
	}
	return "", false
}
