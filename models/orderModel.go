package models

import (
	"math"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// statusPipeline is the forward-only progression; Cancelled sits outside it
// as the escape hatch from any non-terminal stage.
var statusPipeline = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusDelivered}

type OrderType string

const (
	TypeDelivery OrderType = "Delivery"
	TypePickup   OrderType = "Pickup"
	TypeDineIn   OrderType = "Dine-in"
)

type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Customer      string      `json:"customer" gorm:"not null"`
	Address       string      `json:"address" gorm:"not null"`
	Status        OrderStatus `json:"status" gorm:"not null"`
	Type          OrderType   `json:"type" gorm:"not null"`
	Total         float64     `json:"total"`
	DeliveryFee   float64     `json:"deliveryFee"`
	PromotionCode *string     `json:"promotionCode"`
	UserID        *uint       `json:"userId"`
	OrderItems    []OrderItem `json:"orderItems" gorm:"constraint:OnDelete:CASCADE"`
	// Time is the placement timestamp, stamped once when the order is
	// created; unlike CreatedAt it is part of the business record, not
	// bookkeeping.
	Time      time.Time   `json:"time"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	for _, stage := range statusPipeline {
		if s == stage {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// NextStatuses returns the legal next statuses for s: the single next
// pipeline stage plus Cancelled, or nothing when s is terminal.
func NextStatuses(s OrderStatus) []OrderStatus {
	if s.Terminal() {
		return nil
	}
	var next []OrderStatus
	for i, stage := range statusPipeline {
		if stage == s && i+1 < len(statusPipeline) {
			next = append(next, statusPipeline[i+1])
		}
	}
	return append(next, StatusCancelled)
}

// CanTransition reports whether from -> to is a legal status change.
// Skipping pipeline stages and leaving a terminal status are both illegal.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range NextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}

func (t OrderType) Valid() bool {
	return t == TypeDelivery || t == TypePickup || t == TypeDineIn
}

// ComputeTotal re-derives the order total from its items. The delivery fee
// counts only for delivery orders.
func (o *Order) ComputeTotal() float64 {
	sum := 0.0
	for _, item := range o.OrderItems {
		sum += item.Price * float64(item.Quantity)
	}
	if o.Type == TypeDelivery {
		sum += o.DeliveryFee
	}
	return ToFixed(sum, 2)
}

// ToFixed rounds a monetary amount to the given number of decimal places.
func ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return math.Round(num*output) / output
}
