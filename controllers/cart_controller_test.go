package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"junglepets/catalog"
	apperrors "junglepets/common/errors"
	"junglepets/models"
	"junglepets/services"
	"junglepets/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter(t *testing.T) (*gin.Engine, *services.CartStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.Default()
	store := services.NewCartStore(storage.NewMemory(), cat)

	cc := NewCartController(store, cat)
	router := gin.New()
	router.Use(apperrors.ErrorMiddleware())
	router.GET("/products", cc.Products)
	router.GET("/cart", cc.GetCart)
	router.POST("/cart/add", cc.AddItem)
	router.DELETE("/cart/remove/:product_id", cc.RemoveItem)
	router.PUT("/cart/quantity", cc.SetQuantity)
	router.GET("/cart/totals", cc.Totals)
	router.POST("/cart/checkout", cc.Checkout)
	return router, store
}

func TestProductsController(t *testing.T) {
	router, _ := newCartRouter(t)

	recorder := doJSON(router, http.MethodGet, "/products", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestAddItemController(t *testing.T) {
	t.Run("Adding twice yields one line with quantity 2", func(t *testing.T) {
		// Arrange
		router, store := newCartRouter(t)

		// Act
		require.Equal(t, http.StatusOK,
			doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 1}`).Code)
		recorder := doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 1}`)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		items := store.Load(context.Background())
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Unknown product leaves the cart empty", func(t *testing.T) {
		router, store := newCartRouter(t)

		recorder := doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 999}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, store.Load(context.Background()))
	})

	t.Run("Invalid payload - 400 Bad Request", func(t *testing.T) {
		router, _ := newCartRouter(t)

		recorder := doJSON(router, http.MethodPost, "/cart/add", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRemoveItemController(t *testing.T) {
	t.Run("Removes the line", func(t *testing.T) {
		router, store := newCartRouter(t)
		require.Equal(t, http.StatusOK,
			doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 1}`).Code)

		recorder := doJSON(router, http.MethodDelete, "/cart/remove/1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, store.Load(context.Background()))
	})

	t.Run("Non-numeric product id - 400 Bad Request", func(t *testing.T) {
		router, _ := newCartRouter(t)

		recorder := doJSON(router, http.MethodDelete, "/cart/remove/abc", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid product id")
	})
}

func TestSetQuantityController(t *testing.T) {
	t.Run("Sets the quantity", func(t *testing.T) {
		router, store := newCartRouter(t)
		require.Equal(t, http.StatusOK,
			doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 2}`).Code)

		recorder := doJSON(router, http.MethodPut, "/cart/quantity",
			`{"product_id": 2, "quantity": 4}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		items := store.Load(context.Background())
		require.Len(t, items, 1)
		assert.Equal(t, 4, items[0].Quantity)
	})

	t.Run("Zero quantity removes the line", func(t *testing.T) {
		router, store := newCartRouter(t)
		require.Equal(t, http.StatusOK,
			doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 2}`).Code)

		recorder := doJSON(router, http.MethodPut, "/cart/quantity",
			`{"product_id": 2, "quantity": 0}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, store.Load(context.Background()))
	})
}

func TestTotalsController(t *testing.T) {
	router, _ := newCartRouter(t)
	require.Equal(t, http.StatusOK,
		doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 1}`).Code)
	require.Equal(t, http.StatusOK,
		doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 1}`).Code)
	require.Equal(t, http.StatusOK,
		doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 2}`).Code)

	recorder := doJSON(router, http.MethodGet, "/cart/totals", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var totals models.CartTotals
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &totals))
	assert.Equal(t, 3, totals.ItemCount)
	assert.InDelta(t, 50.99, totals.AmountDue, 0.001)
}

func TestCheckoutController(t *testing.T) {
	router, store := newCartRouter(t)
	require.Equal(t, http.StatusOK,
		doJSON(router, http.MethodPost, "/cart/add", `{"product_id": 2}`).Code)

	recorder := doJSON(router, http.MethodPost, "/cart/checkout", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "checkout complete")
	assert.Empty(t, store.Load(context.Background()))

	totals := doJSON(router, http.MethodGet, "/cart/totals", "")
	var after models.CartTotals
	require.NoError(t, json.Unmarshal(totals.Body.Bytes(), &after))
	assert.Equal(t, 0, after.ItemCount)
	assert.Zero(t, after.AmountDue)
}
