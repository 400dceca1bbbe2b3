// Package stats derives dashboard metrics from an order list. Everything is
// recomputed from scratch on each call; at back-office volumes that is
// cheaper than maintaining incremental aggregates.
package stats

import (
	"sort"
	"time"

	"go-restaurant-backoffice/models"
)

// Metric compares the current month against the previous one.
type Metric struct {
	Value         float64 `json:"value"`
	PreviousValue float64 `json:"previousValue"`
	PercentChange float64 `json:"percentChange"`
}

type TypeShare struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Summary struct {
	Revenue          Metric         `json:"revenue"`
	AverageOrder     Metric         `json:"averageOrder"`
	OrderCount       Metric         `json:"orderCount"`
	TypeDistribution []TypeShare    `json:"typeDistribution"`
	TopOrders        []models.Order `json:"topOrders"`
	RecentOrders     []models.Order `json:"recentOrders"`
}

// Summarize computes all dashboard metrics for the month containing now.
func Summarize(orders []models.Order, now time.Time) Summary {
	current := monthOrders(orders, now.Year(), now.Month())
	previous := monthOrders(orders, now.AddDate(0, -1, 0).Year(), now.AddDate(0, -1, 0).Month())

	currentRevenue := revenue(current)
	previousRevenue := revenue(previous)

	currentAOV := averageOrderValue(current)
	previousAOV := averageOrderValue(previous)

	return Summary{
		Revenue: Metric{
			Value:         currentRevenue,
			PreviousValue: previousRevenue,
			PercentChange: PercentChange(currentRevenue, previousRevenue),
		},
		AverageOrder: Metric{
			Value:         currentAOV,
			PreviousValue: previousAOV,
			PercentChange: PercentChange(currentAOV, previousAOV),
		},
		OrderCount: Metric{
			Value:         float64(len(current)),
			PreviousValue: float64(len(previous)),
			PercentChange: PercentChange(float64(len(current)), float64(len(previous))),
		},
		TypeDistribution: TypeDistribution(orders),
		TopOrders:        TopOrders(orders, 5),
		RecentOrders:     RecentOrders(orders, 5),
	}
}

// PercentChange treats a zero previous period as a full 100% change, so a
// brand-new metric never divides by zero.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}

// TypeDistribution counts orders per type, with percentages of the whole,
// sorted by count descending.
func TypeDistribution(orders []models.Order) []TypeShare {
	if len(orders) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, order := range orders {
		orderType := string(order.Type)
		if orderType == "" {
			orderType = "Unknown"
		}
		counts[orderType]++
	}

	shares := make([]TypeShare, 0, len(counts))
	for orderType, count := range counts {
		shares = append(shares, TypeShare{
			Type:       orderType,
			Count:      count,
			Percentage: float64(count) / float64(len(orders)) * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Type < shares[j].Type
	})
	return shares
}

// TopOrders returns the n largest orders by total, descending.
func TopOrders(orders []models.Order, n int) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// RecentOrders returns the n newest orders by creation time, descending.
func RecentOrders(orders []models.Order, n int) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func monthOrders(orders []models.Order, year int, month time.Month) []models.Order {
	var matched []models.Order
	for _, order := range orders {
		if order.CreatedAt.Year() == year && order.CreatedAt.Month() == month {
			matched = append(matched, order)
		}
	}
	return matched
}

func revenue(orders []models.Order) float64 {
	sum := 0.0
	for _, order := range orders {
		sum += order.Total
	}
	return sum
}

func averageOrderValue(orders []models.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	return revenue(orders) / float64(len(orders))
}
