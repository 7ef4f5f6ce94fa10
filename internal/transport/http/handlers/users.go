package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	appLogger "github.com/blstream/ShopMe-Backend/internal/infra/logger"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/middleware"
	"github.com/blstream/ShopMe-Backend/internal/usecase"
)

// UserHandler exposes registration, authentication and account endpoints.
type UserHandler struct {
	users *usecase.UserService
	auth  *usecase.AuthService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService, auth *usecase.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// RegisterRoutes binds account routes, applying optional middleware ahead of
// the login handler.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc, loginMiddlewares ...gin.HandlerFunc) {
	r.POST("/register", h.register)

	chain := append([]gin.HandlerFunc{}, loginMiddlewares...)
	chain = append(chain, h.login)
	r.POST("/login", chain...)

	r.POST("/logout", requireAuth, h.logout)
	r.GET("/current", requireAuth, h.current)
	r.GET("/:id", requireAuth, h.get)
	r.DELETE("/:id", requireAuth, h.delete)
}

func (h *UserHandler) register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	input := usecase.RegisterUserInput{
		Name:             req.Name,
		Surname:          req.Surname,
		Email:            req.Email,
		Password:         req.Password,
		Phone:            req.Phone,
		BankAccount:      req.BankAccount,
		Street:           req.Street,
		City:             req.City,
		ZipCode:          req.ZipCode,
		Voivodeship:      req.Voivodeship,
		InvoiceRequested: req.InvoiceRequested,
		AdditionalInfo:   req.AdditionalInfo,
	}
	if req.Invoice != nil {
		input.Invoice = &domain.Invoice{
			CompanyName: req.Invoice.CompanyName,
			NIP:         req.Invoice.NIP,
			Street:      req.Invoice.Street,
			City:        req.Invoice.City,
			ZipCode:     req.Invoice.ZipCode,
		}
	}

	user, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "email already registered"},
		}, http.StatusInternalServerError, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(*user))
}

func (h *UserHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	token, userCtx, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid email or password"},
			{Err: usecase.ErrTooManyLoginAttempts, Status: http.StatusTooManyRequests, Message: "too many login attempts, try again later"},
		}, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   userCtx.ExpiresAt,
		UserID:      userCtx.UserID.String(),
	})
}

func (h *UserHandler) logout(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), actor); err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "logout failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *UserHandler) current(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	user, err := h.users.Get(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "user lookup failed")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *UserHandler) get(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user id"))
		return
	}

	user, err := h.users.Get(c.Request.Context(), actor, id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: usecase.ErrUserAccessDenied, Status: http.StatusForbidden, Message: "not allowed to read this account"},
		}, http.StatusInternalServerError, "user lookup failed")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*user))
}

func (h *UserHandler) delete(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user id"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), actor, id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: usecase.ErrUserAccessDenied, Status: http.StatusForbidden, Message: "not allowed to close this account"},
		}, http.StatusInternalServerError, "account deletion failed")
		return
	}

	// The closed account's own token must stop working immediately. Admins
	// deleting someone else keep their session. The account is already gone,
	// so a failed revocation only gets logged.
	if actor.UserID == id {
		if err := h.auth.Logout(c.Request.Context(), actor); err != nil {
			appLogger.WithContext(c.Request.Context()).Warn("revoke session after account deletion failed",
				zap.String("user_id", id.String()),
				zap.Error(err),
			)
		}
	}

	c.Status(http.StatusNoContent)
}
