package handlers

import (
	"errors"
	"net/http"

	"beautyboosters/metrics"
	"beautyboosters/middleware"
	"beautyboosters/models"
	"beautyboosters/services/cart"
	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	Carts *cart.Manager
}

func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{Carts: carts}
}

func sessionID(c *gin.Context) string {
	return c.GetString(middleware.ContextSessionID)
}

// withStore runs fn on the caller's cart and answers 500 when the store is unavailable.
func (h *CartHandler) withStore(c *gin.Context, fn func(*cart.Store)) bool {
	err := h.Carts.WithStore(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		fn(s)
		return nil
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Kurven er ikke tilgængelig", err)
		return false
	}
	return true
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	var summary models.CartSummary
	if !h.withStore(c, func(s *cart.Store) {
		summary = s.Checkout()
	}) {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var input models.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig vare", err)
		return
	}

	var (
		added   models.CartItem
		summary models.CartSummary
	)
	err := h.Carts.WithStore(c.Request.Context(), sessionID(c), func(s *cart.Store) error {
		item, err := s.AddToCart(c.Request.Context(), input)
		if err != nil {
			return err
		}
		added = item
		summary = s.Checkout()
		return nil
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			utils.JSONError(c, http.StatusBadRequest, "Ugyldig vare", err)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Kunne ikke tilføje til kurven", err)
		return
	}

	metrics.IncCartMutation("add")
	getLogger(c).Debug("Cart item added", zap.String("itemId", added.ID), zap.Int("items", summary.ItemCount))
	c.JSON(http.StatusCreated, gin.H{"item": added, "cart": summary})
}

// RemoveItem handles DELETE /api/cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id := c.Param("id")
	var (
		removed bool
		summary models.CartSummary
	)
	if !h.withStore(c, func(s *cart.Store) {
		removed = s.RemoveFromCart(c.Request.Context(), id)
		summary = s.Checkout()
	}) {
		return
	}
	if removed {
		metrics.IncCartMutation("remove")
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "cart": summary})
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	var summary models.CartSummary
	if !h.withStore(c, func(s *cart.Store) {
		s.ClearCart(c.Request.Context())
		summary = s.Checkout()
	}) {
		return
	}
	metrics.IncCartMutation("clear")
	c.JSON(http.StatusOK, summary)
}

// GetTotals handles GET /api/cart/totals.
func (h *CartHandler) GetTotals(c *gin.Context) {
	var totals gin.H
	if !h.withStore(c, func(s *cart.Store) {
		totals = gin.H{
			"totalPrice":    s.GetTotalPrice(),
			"totalDuration": s.GetTotalDuration(),
			"itemCount":     s.GetItemCount(),
		}
	}) {
		return
	}
	c.JSON(http.StatusOK, totals)
}

// Checkout handles POST /api/cart/checkout. It only hands the cart over; no payment is created.
func (h *CartHandler) Checkout(c *gin.Context) {
	var summary models.CartSummary
	if !h.withStore(c, func(s *cart.Store) {
		summary = s.Checkout()
	}) {
		return
	}
	if summary.ItemCount == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Kurven er tom", nil)
		return
	}
	c.JSON(http.StatusOK, summary)
}
