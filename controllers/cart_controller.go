package controllers

import (
	"net/http"
	"strconv"

	"junglepets/catalog"
	apperrors "junglepets/common/errors"
	"junglepets/common/logger"
	"junglepets/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AddItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

type SetQuantityRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

type CartController struct {
	Store   *services.CartStore
	Catalog *catalog.Catalog
}

func NewCartController(store *services.CartStore, cat *catalog.Catalog) *CartController {
	return &CartController{Store: store, Catalog: cat}
}

// GetCart returns the persisted cart
func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Store.Load(c.Request.Context()))
}

// AddItem adds one unit of a product to the cart. Unknown products leave
// the cart unchanged.
func (cc *CartController) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrInvalidBody)
		return
	}

	if err := cc.Store.AddItem(c.Request.Context(), req.ProductID); err != nil {
		logger.Error("Failed to save cart", err, zap.Int("product_id", req.ProductID))
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to save cart", err))
		return
	}

	c.JSON(http.StatusOK, cc.Store.Load(c.Request.Context()))
}

// RemoveItem removes a specific item from the cart
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "Invalid product id", err))
		return
	}

	if err := cc.Store.RemoveItem(c.Request.Context(), productID); err != nil {
		logger.Error("Failed to update cart", err, zap.Int("product_id", productID))
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to update cart", err))
		return
	}

	c.JSON(http.StatusOK, cc.Store.Load(c.Request.Context()))
}

// SetQuantity sets a line's quantity; zero or less removes the line
func (cc *CartController) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrInvalidBody)
		return
	}

	if err := cc.Store.SetQuantity(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		logger.Error("Failed to update cart", err, zap.Int("product_id", req.ProductID))
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to update cart", err))
		return
	}

	c.JSON(http.StatusOK, cc.Store.Load(c.Request.Context()))
}

// Totals returns the item count and amount due
func (cc *CartController) Totals(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Store.Totals(c.Request.Context()))
}

// Checkout returns the amount due and clears the cart
func (cc *CartController) Checkout(c *gin.Context) {
	due, err := cc.Store.Checkout(c.Request.Context())
	if err != nil {
		logger.Error("Failed to clear cart", err)
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to checkout", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "checkout complete",
		"amount_due": due,
	})
}

// Products lists the catalog
func (cc *CartController) Products(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.All())
}
