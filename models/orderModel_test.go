package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() User {
	return User{
		ID:    "user-1",
		Email: "amira@example.com",
		Phone: "+21620123456",
		Role:  RoleClient,
	}
}

func testOrderCreate(items ...OrderItem) OrderCreate {
	return OrderCreate{
		Items: items,
		ShippingAddress: ShippingAddress{
			FullName:     "Amira Ben Salah",
			Phone:        "+21620123456",
			AddressLine1: "12 Rue de Carthage",
			City:         "Tunis",
		},
	}
}

func TestNewOrderEmptyCart(t *testing.T) {
	_, err := NewOrder(testUser(), testOrderCreate())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewOrderFreeDelivery(t *testing.T) {
	order, err := NewOrder(testUser(), testOrderCreate(
		OrderItem{ProductID: "p1", ProductName: "Snail Essence", UnitPriceTND: 50, Quantity: 2},
	))
	require.NoError(t, err)

	assert.Equal(t, 100, order.SubtotalTND)
	assert.Equal(t, 0, order.DeliveryFeeTND)
	assert.Equal(t, 100, order.TotalTND)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PaymentCashOnDelivery, order.PaymentMethod)

	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, StatusPending, order.StatusHistory[0].Status)
	assert.Equal(t, "system", order.StatusHistory[0].Actor)
}

func TestNewOrderChargesDeliveryFeeBelowThreshold(t *testing.T) {
	order, err := NewOrder(testUser(), testOrderCreate(
		OrderItem{ProductID: "p1", ProductName: "Rice Toner", UnitPriceTND: 42, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, 42, order.SubtotalTND)
	assert.Equal(t, DeliveryFeeTND, order.DeliveryFeeTND)
	assert.Equal(t, order.SubtotalTND+order.DeliveryFeeTND-order.DiscountTND, order.TotalTND)
}

func TestNewOrderCopiesUserContact(t *testing.T) {
	order, err := NewOrder(testUser(), testOrderCreate(
		OrderItem{ProductID: "p1", ProductName: "Rice Toner", UnitPriceTND: 42, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "amira@example.com", order.UserEmail)
	assert.Equal(t, "+21620123456", order.UserPhone)
	assert.NotEmpty(t, order.ID)
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	number := GenerateOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20260314-[0-9A-F]{4}$`), number)
}

func TestCanBeCancelled(t *testing.T) {
	cases := map[string]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusPreparing: false,
		StatusShipped:   false,
		StatusDelivered: false,
		StatusCancelled: false,
	}
	for status, want := range cases {
		order := Order{Status: status}
		assert.Equal(t, want, order.CanBeCancelled(), "status %s", status)
	}
}

func TestCancelPendingOrder(t *testing.T) {
	order, err := NewOrder(testUser(), testOrderCreate(
		OrderItem{ProductID: "p1", ProductName: "Rice Toner", UnitPriceTND: 42, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, order.Cancel())
	assert.Equal(t, StatusCancelled, order.Status)
	assert.Equal(t, RoleClient, order.CancelledBy)
	require.NotNil(t, order.CancelledAt)

	require.Len(t, order.StatusHistory, 2)
	assert.Equal(t, StatusCancelled, order.StatusHistory[1].Status)
	assert.Equal(t, RoleClient, order.StatusHistory[1].Actor)
}

func TestCancelRejectedOncePreparing(t *testing.T) {
	order := Order{Status: StatusPreparing}
	assert.ErrorIs(t, order.Cancel(), ErrOrderNotCancellable)
	assert.Equal(t, StatusPreparing, order.Status)
	assert.Empty(t, order.StatusHistory)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	order := Order{Status: StatusPending}
	assert.ErrorIs(t, order.SetStatus("refunded", "admin@example.com"), ErrInvalidOrderStatus)
	assert.Equal(t, StatusPending, order.Status)
}

func TestSetStatusAllowsSkippingStates(t *testing.T) {
	// Hand-delivered orders jump straight from pending to delivered.
	order := Order{Status: StatusPending}
	require.NoError(t, order.SetStatus(StatusDelivered, "admin@example.com"))

	assert.Equal(t, StatusDelivered, order.Status)
	require.NotNil(t, order.DeliveredAt)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, "admin:admin@example.com", order.StatusHistory[0].Actor)
}

func TestSetStatusStampsTimestamps(t *testing.T) {
	order := Order{Status: StatusPending}

	require.NoError(t, order.SetStatus(StatusConfirmed, "admin@example.com"))
	assert.NotNil(t, order.ConfirmedAt)
	assert.Nil(t, order.DeliveredAt)

	require.NoError(t, order.SetStatus(StatusCancelled, "admin@example.com"))
	assert.NotNil(t, order.CancelledAt)
	assert.Equal(t, RoleAdmin, order.CancelledBy)

	// One history row per update.
	assert.Len(t, order.StatusHistory, 2)
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses() {
		assert.True(t, IsValidOrderStatus(status))
	}
	assert.False(t, IsValidOrderStatus("refunded"))
	assert.False(t, IsValidOrderStatus(""))
}
