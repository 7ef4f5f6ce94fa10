package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blstream/ShopMe-Backend/internal/usecase"
)

// VoivodeshipHandler exposes the voivodeship reference data.
type VoivodeshipHandler struct {
	voivodeships *usecase.VoivodeshipService
}

// NewVoivodeshipHandler constructs VoivodeshipHandler.
func NewVoivodeshipHandler(voivodeships *usecase.VoivodeshipService) *VoivodeshipHandler {
	return &VoivodeshipHandler{voivodeships: voivodeships}
}

// RegisterRoutes binds the reference-data routes.
func (h *VoivodeshipHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.list)
}

func (h *VoivodeshipHandler) list(c *gin.Context) {
	voivodeships, err := h.voivodeships.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "voivodeship lookup failed"))
		return
	}

	out := make([]VoivodeshipResponse, 0, len(voivodeships))
	for _, v := range voivodeships {
		out = append(out, VoivodeshipResponse{ID: v.ID.String(), Name: v.Name})
	}
	c.JSON(http.StatusOK, out)
}
