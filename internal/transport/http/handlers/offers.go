package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/blstream/ShopMe-Backend/internal/core/search"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/middleware"
	"github.com/blstream/ShopMe-Backend/internal/usecase"
)

// OfferHandler exposes offer search and lifecycle endpoints.
type OfferHandler struct {
	offers *usecase.OfferService
	users  *usecase.UserService
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(offers *usecase.OfferService, users *usecase.UserService) *OfferHandler {
	return &OfferHandler{offers: offers, users: users}
}

// RegisterRoutes binds offer routes. Reads are public, writes require auth.
func (h *OfferHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	r.GET("", h.search)
	r.GET("/:id", h.get)
	r.POST("", requireAuth, h.create)
	r.PUT("/:id", requireAuth, h.update)
	r.DELETE("/:id", requireAuth, h.delete)
}

func (h *OfferHandler) search(c *gin.Context) {
	input, ok := h.parseSearchQuery(c)
	if !ok {
		return
	}

	page, err := h.offers.Search(c.Request.Context(), input)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: search.ErrUnknownSortField, Status: http.StatusBadRequest, Message: "unknown sort field"},
			{Err: search.ErrUnknownSortDirection, Status: http.StatusBadRequest, Message: "unknown sort direction"},
		}, http.StatusInternalServerError, "offer search failed")
		return
	}

	c.JSON(http.StatusOK, toOfferPageResponse(page))
}

func (h *OfferHandler) parseSearchQuery(c *gin.Context) (usecase.SearchOffersInput, bool) {
	var input usecase.SearchOffersInput

	if title := c.Query("title"); title != "" {
		input.Title = &title
	}

	for param, target := range map[string]**int{"page": &input.Page, "pageSize": &input.Size} {
		if raw := c.Query(param); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, NewErrorResponse(c, "parameter "+param+" must be an integer"))
				return input, false
			}
			*target = &value
		}
	}

	for param, target := range map[string]**float64{"priceMin": &input.PriceFrom, "priceMax": &input.PriceTo} {
		if raw := c.Query(param); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, NewErrorResponse(c, "parameter "+param+" must be a number"))
				return input, false
			}
			*target = &value
		}
	}

	for param, target := range map[string]**time.Time{"dateMin": &input.DateFrom, "dateMax": &input.DateTo} {
		if raw := c.Query(param); raw != "" {
			value, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, NewErrorResponse(c, "parameter "+param+" must be an RFC 3339 timestamp"))
				return input, false
			}
			*target = &value
		}
	}

	if sort := c.Query("sort"); sort != "" {
		input.Sort = &sort
	}
	if order := c.Query("order"); order != "" {
		input.Order = &order
	}

	return input, true
}

func (h *OfferHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid offer id"))
		return
	}

	offer, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrOfferNotFound, Status: http.StatusNotFound, Message: "offer not found"},
		}, http.StatusInternalServerError, "offer lookup failed")
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(*offer))
}

func (h *OfferHandler) create(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid offer payload"))
		return
	}

	// The owner snapshot embedded in the offer needs the full account.
	owner, err := h.users.Get(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusUnauthorized, Message: "account no longer exists"},
		}, http.StatusInternalServerError, "offer creation failed")
		return
	}

	offer, err := h.offers.Create(c.Request.Context(), *owner, usecase.OfferInput{
		Title:       req.Title,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Category:    req.Category,
	})
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "offer creation failed")
		return
	}

	c.JSON(http.StatusCreated, toOfferResponse(*offer))
}

func (h *OfferHandler) update(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid offer id"))
		return
	}

	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid offer payload"))
		return
	}

	offer, err := h.offers.Update(c.Request.Context(), actor, id, usecase.OfferInput{
		Title:       req.Title,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Category:    req.Category,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrOfferNotFound, Status: http.StatusNotFound, Message: "offer not found"},
			{Err: usecase.ErrOfferAccessDenied, Status: http.StatusForbidden, Message: "not allowed to modify this offer"},
		}, http.StatusInternalServerError, "offer update failed")
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(*offer))
}

func (h *OfferHandler) delete(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid offer id"))
		return
	}

	if err := h.offers.Delete(c.Request.Context(), actor, id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrOfferNotFound, Status: http.StatusNotFound, Message: "offer not found"},
			{Err: usecase.ErrOfferAccessDenied, Status: http.StatusForbidden, Message: "not allowed to delete this offer"},
		}, http.StatusInternalServerError, "offer deletion failed")
		return
	}

	c.Status(http.StatusNoContent)
}
