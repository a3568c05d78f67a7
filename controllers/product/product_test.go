package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))
	return db
}

func catalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	r.GET("/categories", GetAllCategories(db))
	r.POST("/admin/categories", CreateCategory(db))
	r.DELETE("/admin/categories/:id", DeleteCategory(db))
	return r
}

type productListResponse struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

func listProducts(t *testing.T, r *gin.Engine, query string) productListResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp productListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{Name: "ABC Extinguisher 4kg", Description: "Dry powder extinguisher", Price: 1499, Stock: 20, Category: "Extinguishers"},
		{Name: "CO2 Extinguisher 2kg", Description: "For electrical fires", Price: 2999, Stock: 5, Category: "Extinguishers"},
		{Name: "Smoke Alarm", Description: "Photoelectric detector", Price: 899, Stock: 30, Category: "Alarms"},
		{Name: "Fire Blanket", Description: "Kitchen safety blanket", Price: 650, Stock: 12, Category: "Accessories"},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestListProductsSearch(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	r := catalogRouter(db)

	resp := listProducts(t, r, "?search=extinguisher")
	assert.EqualValues(t, 2, resp.Total)
	for _, p := range resp.Products {
		assert.True(t, strings.Contains(strings.ToLower(p.Name), "extinguisher"))
	}

	// description matches count too
	resp = listProducts(t, r, "?search=electrical")
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "CO2 Extinguisher 2kg", resp.Products[0].Name)
}

func TestListProductsCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	r := catalogRouter(db)

	resp := listProducts(t, r, "?category=Alarms")
	assert.EqualValues(t, 1, resp.Total)

	// "All" means no filter
	resp = listProducts(t, r, "?category=All")
	assert.EqualValues(t, 4, resp.Total)
}

func TestListProductsPriceRangeAndSort(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	r := catalogRouter(db)

	resp := listProducts(t, r, "?min_price=800&max_price=2000&sort_by=price-low")
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Smoke Alarm", resp.Products[0].Name)
	assert.Equal(t, "ABC Extinguisher 4kg", resp.Products[1].Name)

	resp = listProducts(t, r, "?sort_by=price-high")
	assert.Equal(t, "CO2 Extinguisher 2kg", resp.Products[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/products?min_price=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProductsPagination(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	r := catalogRouter(db)

	resp := listProducts(t, r, "?sort_by=name&page=1&limit=3")
	assert.EqualValues(t, 4, resp.Total)
	assert.Len(t, resp.Products, 3)

	resp = listProducts(t, r, "?sort_by=name&page=2&limit=3")
	assert.Len(t, resp.Products, 1)

	// out-of-range inputs fall back to defaults
	resp = listProducts(t, r, "?page=0&limit=1000")
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 12, resp.Limit)
}

func TestGetProductByID(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	r := catalogRouter(db)

	var p models.Product
	require.NoError(t, db.First(&p, "name = ?", "Smoke Alarm").Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", p.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, p.Name, got.Name)

	req = httptest.NewRequest(http.MethodGet, "/products/99999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryLeavesProducts(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	cat := models.Category{Name: "Alarms"}
	require.NoError(t, db.Create(&cat).Error)
	r := catalogRouter(db)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/categories/%d", cat.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// products keep their denormalized category string
	var p models.Product
	require.NoError(t, db.First(&p, "name = ?", "Smoke Alarm").Error)
	assert.Equal(t, "Alarms", p.Category)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	db := setupTestDB(t)
	r := catalogRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(`{"name":"Signage"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}
