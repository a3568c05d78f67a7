package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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
		&models.User{}, &models.GuestUser{},
		&models.Product{}, &models.Category{},
		&models.Cart{}, &models.CartItem{},
		&models.GuestCart{}, &models.GuestCartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.StoreSettings{},
	))
	return db
}

func cartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/cart", GetUserCart(db))
	r.POST("/cart", AddCartItem(db))
	r.PUT("/cart/:product_id", SetCartItemQuantity(db))
	r.DELETE("/cart/:product_id", DeleteCartItem(db))
	r.DELETE("/cart", ClearUserCart(db))
	return r
}

func addItem(t *testing.T, r *gin.Engine, productID uint, quantity int) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(AddItemInput{ProductID: productID, Quantity: quantity})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Stock: stock, Category: "Extinguishers"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestAddSameProductTwiceIncrementsQuantity(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "ABC Extinguisher 4kg", 1499, 20)
	r := cartRouter(db, "user-1")

	w := addItem(t, r, p.ID, 1)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = addItem(t, r, p.ID, 2)
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1, "same product must not create a duplicate line")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddUnknownProductRejected(t *testing.T) {
	db := setupTestDB(t)
	r := cartRouter(db, "user-1")

	w := addItem(t, r, 999, 1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetQuantityBelowOneRejected(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Smoke Alarm", 899, 10)
	r := cartRouter(db, "user-1")
	addItem(t, r, p.ID, 2)

	body := bytes.NewBufferString(`{"quantity":0}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", p.ID), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// cart unchanged
	var item models.CartItem
	require.NoError(t, db.First(&item, "product_id = ?", p.ID).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestSetQuantityOverwrites(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Fire Blanket", 650, 10)
	r := cartRouter(db, "user-1")
	addItem(t, r, p.ID, 2)

	body := bytes.NewBufferString(`{"quantity":5}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d", p.ID), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.First(&item, "product_id = ?", p.ID).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestGetCartTotal(t *testing.T) {
	db := setupTestDB(t)
	p1 := seedProduct(t, db, "CO2 Extinguisher", 2999.99, 5)
	p2 := seedProduct(t, db, "Exit Sign", 350.50, 30)
	r := cartRouter(db, "user-1")
	addItem(t, r, p1.ID, 2)
	addItem(t, r, p2.ID, 1)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.CartItem `json:"items"`
		Total float64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 6350.48, resp.Total)
}

func TestDeleteCartItem(t *testing.T) {
	db := setupTestDB(t)
	p := seedProduct(t, db, "Hydrant Valve", 4500, 8)
	r := cartRouter(db, "user-1")
	addItem(t, r, p.ID, 1)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/cart/%d", p.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// deleting again reports not found
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/cart/%d", p.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedIdentityClaimRejected(t *testing.T) {
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		// a token minted elsewhere can carry a non-string user_id claim
		c.Set("user_id", 12345)
		c.Next()
	})
	r.GET("/cart", GetUserCart(db))
	r.GET("/guest/cart", GetGuestCart(db))

	for _, path := range []string{"/cart", "/guest/cart"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	p1 := seedProduct(t, db, "Helmet", 999, 10)
	p2 := seedProduct(t, db, "Gloves", 299, 10)
	r := cartRouter(db, "user-1")
	addItem(t, r, p1.ID, 1)
	addItem(t, r, p2.ID, 3)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}
