package productcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Monil7828/Ecommerce/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatal("failed to connect to test database: " + err.Error())
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductSize{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/sales", GetSaleProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	r.POST("/admin/products", CreateProduct(db))
	r.PUT("/admin/products/:id", UpdateProduct(db))
	r.DELETE("/admin/products/:id", DeleteProduct(db))
	return r
}

func sampleProduct() ProductInput {
	return ProductInput{
		Name:        "Denim Jacket",
		Description: "Classic fit",
		Price:       100,
		Category:    "men",
		Sizes: []SizeInput{
			{ID: "m", Label: "M"},
			{ID: "l", Label: "L"},
		},
		DeliveryInfo: "Ships in 3 days",
		OnSale:       "no",
		PriceDrop:    0,
		ImageURL:     "https://cdn.example.com/denim.jpg",
	}
}

func postProduct(router *gin.Engine, input ProductInput) *httptest.ResponseRecorder {
	body, _ := json.Marshal(input)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// ----------------------- TESTS ----------------------- //

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	w := postProduct(router, sampleProduct())
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Denim Jacket", created.Name)
	assert.Len(t, created.Sizes, 2)
}

func TestCreateProductInvalidPrice(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	input := sampleProduct()
	input.Price = 0
	assert.Equal(t, http.StatusBadRequest, postProduct(router, input).Code)
}

func TestCreateProductPriceDropOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	input := sampleProduct()
	input.OnSale = "yes"
	input.PriceDrop = 120
	assert.Equal(t, http.StatusBadRequest, postProduct(router, input).Code)
}

func TestCreateProductDropIgnoredWhenNotOnSale(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	input := sampleProduct()
	input.OnSale = "no"
	input.PriceDrop = 40
	w := postProduct(router, input)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 0.0, created.PriceDrop)
	assert.Equal(t, 100.0, created.FinalPrice())
}

func TestGetSaleProducts(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	db.Create(&models.Product{Name: "Full price", Price: 10, OnSale: "no"})
	db.Create(&models.Product{Name: "Discounted", Price: 20, OnSale: "yes", PriceDrop: 50})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/sales", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 1)
	assert.Equal(t, "Discounted", products[0].Name)
}

func TestGetProductsByCategory(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	db.Create(&models.Product{Name: "Jacket", Price: 10, Category: "men", OnSale: "no"})
	db.Create(&models.Product{Name: "Dress", Price: 20, Category: "women", OnSale: "no"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products?category=women", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 1)
	assert.Equal(t, "Dress", products[0].Name)
}

func TestUpdateProductReplacesSizes(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	var created models.Product
	json.Unmarshal(postProduct(router, sampleProduct()).Body.Bytes(), &created)

	input := sampleProduct()
	input.Sizes = []SizeInput{{ID: "xl", Label: "XL"}}
	input.OnSale = "yes"
	input.PriceDrop = 25
	body, _ := json.Marshal(input)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/admin/products/%d", created.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	db.Preload("Sizes").First(&updated, created.ID)
	assert.Len(t, updated.Sizes, 1)
	assert.Equal(t, "XL", updated.Sizes[0].Label)
	assert.Equal(t, 75.0, updated.FinalPrice())
}

func TestGetProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/424242", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	var created models.Product
	json.Unmarshal(postProduct(router, sampleProduct()).Body.Bytes(), &created)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/admin/products/%d", created.ID), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var productCount, sizeCount int64
	db.Model(&models.Product{}).Count(&productCount)
	db.Model(&models.ProductSize{}).Count(&sizeCount)
	assert.Equal(t, int64(0), productCount)
	assert.Equal(t, int64(0), sizeCount)
}
