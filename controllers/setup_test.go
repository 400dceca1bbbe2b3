package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-restaurant-backoffice/config"
	"go-restaurant-backoffice/database"
	"go-restaurant-backoffice/logger"
	"go-restaurant-backoffice/models"
	"go-restaurant-backoffice/routes"
	"go-restaurant-backoffice/ws"
)

// newTestServer wires the full route surface against an in-memory sqlite
// database. One connection only: the in-memory database vanishes if the
// pool opens a second one.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, config.UploadConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	log := logger.New(logger.Config{Level: "error"})
	menuItemHub := ws.NewHub("menu-items", log)
	orderHub := ws.NewHub("orders", log)
	upload := config.UploadConfig{Dir: t.TempDir(), PublicPrefix: "/public/menuIcons"}

	router := gin.New()
	routes.MenuItemRoutes(router, db, menuItemHub, upload)
	routes.OrderRoutes(router, db, orderHub)
	routes.DashboardRoutes(router, db)

	return router, db, upload
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func doMultipart(t *testing.T, router *gin.Engine, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(method, path, &buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeOrder(t *testing.T, recorder *httptest.ResponseRecorder) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &order))
	return order
}

func decodeMenuItem(t *testing.T, recorder *httptest.ResponseRecorder) models.MenuItem {
	t.Helper()
	var menuItem models.MenuItem
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &menuItem))
	return menuItem
}

func seedOrder(t *testing.T, db *gorm.DB, order *models.Order) {
	t.Helper()
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if order.Type == "" {
		order.Type = models.TypeDelivery
	}
	if order.Customer == "" {
		order.Customer = "Alex"
	}
	if order.Address == "" {
		order.Address = "12 Main St"
	}
	if order.Time.IsZero() {
		order.Time = time.Now()
	}
	require.NoError(t, db.Create(order).Error)
}
