package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-restaurant-backoffice/models"
)

func orderAt(id uint, total float64, orderType models.OrderType, createdAt time.Time) models.Order {
	return models.Order{
		ID:        id,
		Total:     total,
		Type:      orderType,
		Status:    models.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 100.0, PercentChange(50, 0))
	assert.Equal(t, 100.0, PercentChange(0, 0))
	assert.Equal(t, 50.0, PercentChange(150, 100))
	assert.Equal(t, -25.0, PercentChange(75, 100))
}

func TestSummarizeComparesMonths(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		orderAt(1, 100, models.TypeDelivery, now),
		orderAt(2, 50, models.TypeDelivery, now.Add(-time.Hour)),
		orderAt(3, 100, models.TypePickup, lastMonth),
	}

	summary := Summarize(orders, now)

	assert.Equal(t, 150.0, summary.Revenue.Value)
	assert.Equal(t, 100.0, summary.Revenue.PreviousValue)
	assert.Equal(t, 50.0, summary.Revenue.PercentChange)

	assert.Equal(t, 2.0, summary.OrderCount.Value)
	assert.Equal(t, 1.0, summary.OrderCount.PreviousValue)

	assert.Equal(t, 75.0, summary.AverageOrder.Value)
	assert.Equal(t, 100.0, summary.AverageOrder.PreviousValue)
	assert.Equal(t, -25.0, summary.AverageOrder.PercentChange)
}

func TestSummarizeEmptyPreviousMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{orderAt(1, 80, models.TypeDelivery, now)}

	summary := Summarize(orders, now)

	assert.Equal(t, 0.0, summary.Revenue.PreviousValue)
	assert.Equal(t, 100.0, summary.Revenue.PercentChange)
	assert.Equal(t, 100.0, summary.OrderCount.PercentChange)
}

func TestTypeDistribution(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		orderAt(1, 10, models.TypeDelivery, now),
		orderAt(2, 10, models.TypeDelivery, now),
		orderAt(3, 10, models.TypePickup, now),
		orderAt(4, 10, models.TypeDelivery, now),
	}

	shares := TypeDistribution(orders)

	assert.Len(t, shares, 2)
	assert.Equal(t, "Delivery", shares[0].Type)
	assert.Equal(t, 3, shares[0].Count)
	assert.Equal(t, 75.0, shares[0].Percentage)
	assert.Equal(t, "Pickup", shares[1].Type)
	assert.Equal(t, 25.0, shares[1].Percentage)
}

func TestTypeDistributionEmpty(t *testing.T) {
	assert.Nil(t, TypeDistribution(nil))
}

func TestTopOrders(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		orderAt(1, 10, models.TypeDelivery, now),
		orderAt(2, 30, models.TypeDelivery, now),
		orderAt(3, 20, models.TypeDelivery, now),
	}

	top := TopOrders(orders, 2)

	assert.Len(t, top, 2)
	assert.Equal(t, uint(2), top[0].ID)
	assert.Equal(t, uint(3), top[1].ID)
	// Input slice order is preserved.
	assert.Equal(t, uint(1), orders[0].ID)
}

func TestRecentOrders(t *testing.T) {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt(1, 10, models.TypeDelivery, base),
		orderAt(2, 10, models.TypeDelivery, base.Add(2*time.Hour)),
		orderAt(3, 10, models.TypeDelivery, base.Add(time.Hour)),
	}

	recent := RecentOrders(orders, 5)

	assert.Len(t, recent, 3)
	assert.Equal(t, uint(2), recent[0].ID)
	assert.Equal(t, uint(3), recent[1].ID)
	assert.Equal(t, uint(1), recent[2].ID)
}
