package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentCard           = "card"
)

// Free delivery kicks in at 100 TND, otherwise a flat fee applies.
const (
	FreeDeliveryThresholdTND = 100
	DeliveryFeeTND           = 7
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrOrderNotCancellable = errors.New("order is already in preparation or delivered")
)

var orderStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// OrderStatuses lists every accepted status value.
func OrderStatuses() []string {
	return orderStatuses
}

func IsValidOrderStatus(status string) bool {
	for _, s := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of the product at checkout time. Later
// product edits must not change past orders.
type OrderItem struct {
	ProductID    string `json:"product_id" bson:"product_id" binding:"required"`
	ProductName  string `json:"product_name" bson:"product_name" binding:"required"`
	ProductImage string `json:"product_image" bson:"product_image"`
	Brand        string `json:"brand" bson:"brand"`
	Quantity     int    `json:"quantity" bson:"quantity" binding:"required,min=1"`
	UnitPriceTND int    `json:"unit_price_tnd" bson:"unit_price_tnd" binding:"required"`
}

type ShippingAddress struct {
	FullName     string `json:"full_name" bson:"full_name" binding:"required"`
	Phone        string `json:"phone" bson:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" bson:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2" bson:"address_line2"`
	City         string `json:"city" bson:"city" binding:"required"`
	PostalCode   string `json:"postal_code" bson:"postal_code"`
	Governorate  string `json:"governorate" bson:"governorate"`
}

// StatusHistoryEntry is one row of the append-only audit trail.
type StatusHistoryEntry struct {
	Status    string    `json:"status" bson:"status"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Actor     string    `json:"actor" bson:"actor"`
}

type Order struct {
	ID              string               `json:"id" bson:"id"`
	OrderNumber     string               `json:"order_number" bson:"order_number"`
	UserID          string               `json:"user_id" bson:"user_id"`
	UserEmail       string               `json:"user_email" bson:"user_email"`
	UserPhone       string               `json:"user_phone" bson:"user_phone"`
	Items           []OrderItem          `json:"items" bson:"items"`
	SubtotalTND     int                  `json:"subtotal_tnd" bson:"subtotal_tnd"`
	DeliveryFeeTND  int                  `json:"delivery_fee_tnd" bson:"delivery_fee_tnd"`
	DiscountTND     int                  `json:"discount_tnd" bson:"discount_tnd"`
	TotalTND        int                  `json:"total_tnd" bson:"total_tnd"`
	ShippingAddress ShippingAddress      `json:"shipping_address" bson:"shipping_address"`
	DeliveryNotes   string               `json:"delivery_notes" bson:"delivery_notes"`
	PaymentMethod   string               `json:"payment_method" bson:"payment_method"`
	Status          string               `json:"status" bson:"status"`
	StatusHistory   []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
	ConfirmedAt     *time.Time           `json:"confirmed_at" bson:"confirmed_at"`
	DeliveredAt     *time.Time           `json:"delivered_at" bson:"delivered_at"`
	CancelledAt     *time.Time           `json:"cancelled_at" bson:"cancelled_at"`
	CancelledBy     string               `json:"cancelled_by,omitempty" bson:"cancelled_by,omitempty"`
}

type OrderCreate struct {
	Items           []OrderItem     `json:"items" binding:"required"`
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	DeliveryNotes   string          `json:"delivery_notes"`
	PaymentMethod   string          `json:"payment_method"`
}

// GenerateOrderNumber returns an ORD-YYYYMMDD-XXXX number. The random
// suffix is not collision-checked; duplicates are accepted.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// NewOrder builds a pending order from checkout input. It computes the
// subtotal from the item snapshots, applies the delivery fee, and
// seeds the status history.
func NewOrder(user User, data OrderCreate) (Order, error) {
	if len(data.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	subtotal := 0
	for _, item := range data.Items {
		subtotal += item.UnitPriceTND * item.Quantity
	}

	deliveryFee := DeliveryFeeTND
	if subtotal >= FreeDeliveryThresholdTND {
		deliveryFee = 0
	}

	paymentMethod := data.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentCashOnDelivery
	}

	now := time.Now().UTC()
	return Order{
		ID:              uuid.NewString(),
		OrderNumber:     GenerateOrderNumber(now),
		UserID:          user.ID,
		UserEmail:       user.Email,
		UserPhone:       user.Phone,
		Items:           data.Items,
		SubtotalTND:     subtotal,
		DeliveryFeeTND:  deliveryFee,
		DiscountTND:     0,
		TotalTND:        subtotal + deliveryFee,
		ShippingAddress: data.ShippingAddress,
		DeliveryNotes:   data.DeliveryNotes,
		PaymentMethod:   paymentMethod,
		Status:          StatusPending,
		StatusHistory: []StatusHistoryEntry{
			{Status: StatusPending, Timestamp: now, Actor: "system"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanBeCancelled reports whether the owning client may still cancel.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Cancel performs a client-side cancellation. Orders already in
// preparation or further along are out of reach.
func (o *Order) Cancel() error {
	if !o.CanBeCancelled() {
		return ErrOrderNotCancellable
	}

	now := time.Now().UTC()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelledBy = RoleClient
	o.UpdatedAt = now
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    StatusCancelled,
		Timestamp: now,
		Actor:     RoleClient,
	})
	return nil
}

// SetStatus applies a privileged status update. Any enumerated status
// is accepted from the current one; the admin panel relies on skipping
// intermediate states for hand-delivered orders.
func (o *Order) SetStatus(status, adminEmail string) error {
	if !IsValidOrderStatus(status) {
		return ErrInvalidOrderStatus
	}

	now := time.Now().UTC()
	o.Status = status
	o.UpdatedAt = now

	switch status {
	case StatusConfirmed:
		o.ConfirmedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
		o.CancelledBy = RoleAdmin
	}

	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    status,
		Timestamp: now,
		Actor:     "admin:" + adminEmail,
	})
	return nil
}
