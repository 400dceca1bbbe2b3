package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-restaurant-backoffice/models"
)

func TestCreateOrderComputesTotalAndStartsPending(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"customer":    "Alex",
		"address":     "12 Main St",
		"deliveryFee": 2.99,
		"items": []map[string]interface{}{
			{"menuItemId": 1, "quantity": 2, "price": 7.99},
			{"menuItemId": 2, "quantity": 1, "price": 5.00},
		},
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	order := decodeOrder(t, recorder)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.TypeDelivery, order.Type)
	assert.Equal(t, 23.97, order.Total)
	assert.Len(t, order.OrderItems, 2)
}

func TestCreateOrderStampsPlacementTime(t *testing.T) {
	router, _, _ := newTestServer(t)
	before := time.Now().Add(-time.Second)

	recorder := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"customer": "Alex",
		"address":  "12 Main St",
		"items": []map[string]interface{}{
			{"menuItemId": 1, "quantity": 1, "price": 5.00},
		},
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"time":`)

	order := decodeOrder(t, recorder)
	assert.False(t, order.Time.IsZero())
	assert.True(t, order.Time.After(before))

	// The stamp survives the list read.
	recorder = doJSON(t, router, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, decodeOrder(t, recorder).Time.IsZero())
}

func TestCreateOrderPickupExcludesDeliveryFee(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"customer":    "Alex",
		"address":     "12 Main St",
		"type":        "Pickup",
		"deliveryFee": 2.99,
		"items": []map[string]interface{}{
			{"menuItemId": 1, "quantity": 1, "price": 10.00},
		},
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 10.0, decodeOrder(t, recorder).Total)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"customer": "Alex",
		"address":  "12 Main St",
		"items":    []map[string]interface{}{},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateOrderRejectsInvalidType(t *testing.T) {
	router, _, _ := newTestServer(t)

	recorder := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"customer": "Alex",
		"address":  "12 Main St",
		"type":     "Teleport",
		"items": []map[string]interface{}{
			{"menuItemId": 1, "quantity": 1, "price": 1.00},
		},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateOrderFollowsStatusPipeline(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{Status: models.StatusPending}
	seedOrder(t, db, &order)
	path := fmt.Sprintf("/orders/%d", order.ID)

	// Skipping a stage is rejected.
	recorder := doJSON(t, router, http.MethodPut, path, map[string]interface{}{"status": "Ready"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Moving to the next stage is accepted.
	recorder = doJSON(t, router, http.MethodPut, path, map[string]interface{}{"status": "Preparing"})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, models.StatusPreparing, decodeOrder(t, recorder).Status)

	recorder = doJSON(t, router, http.MethodPut, path, map[string]interface{}{"status": "Ready"})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPut, path, map[string]interface{}{"status": "Delivered"})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Delivered is terminal.
	recorder = doJSON(t, router, http.MethodPut, path, map[string]interface{}{"status": "Cancelled"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateOrderCancelFromAnyActiveStage(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{Status: models.StatusPreparing}
	seedOrder(t, db, &order)

	recorder := doJSON(t, router, http.MethodPut, fmt.Sprintf("/orders/%d", order.ID),
		map[string]interface{}{"status": "Cancelled"})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, models.StatusCancelled, decodeOrder(t, recorder).Status)
}

func TestUpdateOrderTypeRecomputesTotal(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{
		Type:        models.TypeDelivery,
		DeliveryFee: 2.99,
		OrderItems:  []models.OrderItem{{Quantity: 2, Price: 7.99}},
	}
	order.Total = order.ComputeTotal()
	seedOrder(t, db, &order)
	require.Equal(t, 18.97, order.Total)

	recorder := doJSON(t, router, http.MethodPut, fmt.Sprintf("/orders/%d", order.ID),
		map[string]interface{}{"type": "Pickup"})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 15.98, decodeOrder(t, recorder).Total)
}

func TestUpdateOrderNotFound(t *testing.T) {
	router, _, _ := newTestServer(t)
	recorder := doJSON(t, router, http.MethodPut, "/orders/999",
		map[string]interface{}{"customer": "Nobody"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddItemsToOrderBumpsTotal(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{
		Type:        models.TypeDelivery,
		DeliveryFee: 2.99,
		OrderItems:  []models.OrderItem{{Quantity: 1, Price: 5.00}},
	}
	order.Total = order.ComputeTotal()
	seedOrder(t, db, &order)

	recorder := doJSON(t, router, http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID),
		[]map[string]interface{}{
			{"menuItemId": 3, "quantity": 2, "price": 7.99},
		})

	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeOrder(t, recorder)
	assert.Equal(t, 23.97, updated.Total)
	assert.Len(t, updated.OrderItems, 2)
	assert.Equal(t, updated.ComputeTotal(), updated.Total)
}

func TestAddItemsToOrderRejectsEmptyList(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{}
	seedOrder(t, db, &order)

	recorder := doJSON(t, router, http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID),
		[]map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRemoveItemFromOrderSubtractsTotal(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{
		Type:        models.TypeDelivery,
		DeliveryFee: 2.99,
		OrderItems: []models.OrderItem{
			{Quantity: 2, Price: 7.99},
			{Quantity: 1, Price: 5.00},
		},
	}
	order.Total = order.ComputeTotal()
	seedOrder(t, db, &order)

	recorder := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/orders/%d/items/%d", order.ID, order.OrderItems[1].ID), nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeOrder(t, recorder)
	assert.Equal(t, 18.97, updated.Total)
	assert.Len(t, updated.OrderItems, 1)
}

func TestRemoveLastItemLeavesOrderWithFeeOnlyTotal(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{
		Type:        models.TypeDelivery,
		DeliveryFee: 2.99,
		OrderItems:  []models.OrderItem{{Quantity: 1, Price: 5.00}},
	}
	order.Total = order.ComputeTotal()
	seedOrder(t, db, &order)

	recorder := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/orders/%d/items/%d", order.ID, order.OrderItems[0].ID), nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeOrder(t, recorder)
	assert.Empty(t, updated.OrderItems)
	assert.Equal(t, 2.99, updated.Total)
}

func TestRemoveItemFromWrongOrderIs404(t *testing.T) {
	router, db, _ := newTestServer(t)
	first := models.Order{OrderItems: []models.OrderItem{{Quantity: 1, Price: 5.00}}}
	seedOrder(t, db, &first)
	second := models.Order{}
	seedOrder(t, db, &second)

	recorder := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/orders/%d/items/%d", second.ID, first.OrderItems[0].ID), nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	router, db, _ := newTestServer(t)
	order := models.Order{
		OrderItems: []models.OrderItem{
			{Quantity: 1, Price: 5.00},
			{Quantity: 2, Price: 7.99},
		},
	}
	seedOrder(t, db, &order)

	recorder := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var orphans int64
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	recorder = doJSON(t, router, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetOrdersFiltersByStatus(t *testing.T) {
	router, db, _ := newTestServer(t)
	seedOrder(t, db, &models.Order{Status: models.StatusPending})
	seedOrder(t, db, &models.Order{Status: models.StatusDelivered})
	seedOrder(t, db, &models.Order{Status: models.StatusPending})

	recorder := doJSON(t, router, http.MethodGet, "/orders?status=Pending", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestGetOrdersByUser(t *testing.T) {
	router, db, _ := newTestServer(t)
	userID := uint(7)
	seedOrder(t, db, &models.Order{UserID: &userID})
	seedOrder(t, db, &models.Order{})
	seedOrder(t, db, &models.Order{UserID: &userID})

	recorder := doJSON(t, router, http.MethodGet, "/orders/user/7", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestGetOrderNotFound(t *testing.T) {
	router, _, _ := newTestServer(t)
	recorder := doJSON(t, router, http.MethodGet, "/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
