package promotion

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

func (h *Handler) List(c *gin.Context) {
	promotions, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("list promotions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch promotions"})
		return
	}

	c.JSON(http.StatusOK, promotions)
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Title           string  `json:"title"`
		Description     string  `json:"description"`
		DiscountPercent float64 `json:"discountPercent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.Title, req.Description, req.DiscountPercent)
	if err != nil {
		if errors.Is(err, ErrInvalidPromotion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("create promotion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create promotion"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("delete promotion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete promotion"})
		return
	}

	c.Status(http.StatusNoContent)
}
