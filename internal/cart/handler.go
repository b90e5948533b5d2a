package cart

import (
	"errors"
	"net/http"
	"time"

	"popfood/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const keepAliveInterval = 25 * time.Second

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type cartResponse struct {
	Items    []Item  `json:"items"`
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
}

func respond(c *gin.Context, status int, items []Item) {
	if items == nil {
		items = []Item{}
	}
	c.JSON(status, cartResponse{
		Items:    items,
		Count:    Count(items),
		Subtotal: Subtotal(items),
	})
}

// GET /cart
func (h *Handler) Get(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

// POST /cart/items
func (h *Handler) Add(c *gin.Context) {
	var req struct {
		DishID   string `json:"dishId"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.service.Add(c.Request.Context(), c.GetString("userID"), req.DishID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

// PATCH /cart/items/:dishId
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.service.UpdateQuantity(c.Request.Context(), c.GetString("userID"), c.Param("dishId"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

// DELETE /cart/items/:dishId
func (h *Handler) Remove(c *gin.Context) {
	items, err := h.service.Remove(c.Request.Context(), c.GetString("userID"), c.Param("dishId"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

// DELETE /cart
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.GetString("userID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /cart/events streams the current cart, then every change, as SSE.
func (h *Handler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userID")

	events, cancel := h.service.Subscribe(userID)
	defer cancel()

	snapshot, err := h.service.Snapshot(ctx, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("cart", snapshot)
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent("cart", ev)
			c.Writer.Flush()
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingDish):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDishUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("cart request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
