package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// POST /orders
func (h *Handler) Checkout(c *gin.Context) {
	o, err := h.service.Checkout(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("checkout")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusCreated, o)
}

// GET /orders
func (h *Handler) ListMine(c *gin.Context) {
	orders, err := h.service.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		log.Error().Err(err).Msg("list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
