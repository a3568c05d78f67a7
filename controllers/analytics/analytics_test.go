package analyticsControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/firesafetytn/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Category{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, ref string, status models.OrderStatus, total float64, items []models.OrderItem) {
	t.Helper()
	require.NoError(t, db.Create(&models.Order{
		OrderRef:      ref,
		UserID:        "user-1",
		CustomerName:  "Arun Kumar",
		Email:         "arun@example.com",
		Items:         items,
		Total:         total,
		Status:        status,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
	}).Error)
}

func TestDashboardCounts(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Product{Name: "Extinguisher", Price: 1499, Stock: 20}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Smoke Alarm", Price: 899, Stock: 2}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Extinguishers"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "a@example.com", Role: "customer"}).Error)
	seedOrder(t, db, "ref-1", models.OrderStatusPending, 1499, nil)
	seedOrder(t, db, "ref-2", models.OrderStatusDelivered, 899, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/dashboard", GetDashboard(db))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalProducts    int64            `json:"total_products"`
		TotalCategories  int64            `json:"total_categories"`
		TotalOrders      int64            `json:"total_orders"`
		PendingOrders    int64            `json:"pending_orders"`
		TotalCustomers   int64            `json:"total_customers"`
		LowStockProducts []models.Product `json:"low_stock_products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.TotalProducts)
	assert.EqualValues(t, 1, resp.TotalCategories)
	assert.EqualValues(t, 2, resp.TotalOrders)
	assert.EqualValues(t, 1, resp.PendingOrders)
	assert.EqualValues(t, 1, resp.TotalCustomers)
	require.Len(t, resp.LowStockProducts, 1)
	assert.Equal(t, "Smoke Alarm", resp.LowStockProducts[0].Name)
}

func TestAnalyticsRevenueAndAverage(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "a@example.com", Role: "customer"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "user-2", Email: "b@example.com", Role: "customer"}).Error)
	seedOrder(t, db, "ref-1", models.OrderStatusPending, 1000, nil)
	seedOrder(t, db, "ref-2", models.OrderStatusDelivered, 500.50, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/analytics", GetAnalytics(db))

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalRevenue      float64 `json:"total_revenue"`
		TotalOrders       int     `json:"total_orders"`
		AverageOrderValue float64 `json:"average_order_value"`
		ConversionRate    float64 `json:"conversion_rate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1500.50, resp.TotalRevenue)
	assert.Equal(t, 2, resp.TotalOrders)
	assert.Equal(t, 750.25, resp.AverageOrderValue)
	assert.Equal(t, 100.0, resp.ConversionRate)
}

func TestAggregateTopProducts(t *testing.T) {
	orders := []models.Order{
		{Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Extinguisher", Price: 1499, Quantity: 2},
			{ProductID: 2, ProductName: "Smoke Alarm", Price: 899, Quantity: 1},
		}},
		{Items: []models.OrderItem{
			{ProductID: 2, ProductName: "Smoke Alarm", Price: 899, Quantity: 4},
		}},
	}

	ranked := aggregateTopProducts(orders, 5)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint(2), ranked[0].ProductID)
	assert.Equal(t, 5, ranked[0].UnitsSold)
	assert.Equal(t, 4495.0, ranked[0].Revenue)
	assert.Equal(t, uint(1), ranked[1].ProductID)
	assert.Equal(t, 2998.0, ranked[1].Revenue)

	// limit truncates the ranking
	ranked = aggregateTopProducts(orders, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, uint(2), ranked[0].ProductID)
}

func TestAnalyticsEmptyStore(t *testing.T) {
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/analytics", GetAnalytics(db))

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalRevenue      float64 `json:"total_revenue"`
		AverageOrderValue float64 `json:"average_order_value"`
		ConversionRate    float64 `json:"conversion_rate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.TotalRevenue)
	assert.Zero(t, resp.AverageOrderValue)
	assert.Zero(t, resp.ConversionRate)
}
