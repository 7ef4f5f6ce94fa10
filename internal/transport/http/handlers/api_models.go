package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/middleware"
)

// ErrorResponse represents a generic error payload with the request ID for
// debugging.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response carrying the correlation ID.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:     errorMsg,
		RequestID: middleware.RequestIDFromContext(c.Request.Context()),
	}
}

// ValidationErrorResponse carries field-level violations for a rejected write.
type ValidationErrorResponse struct {
	Error      string              `json:"error"`
	Violations map[string][]string `json:"violations"`
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// OwnerResponse is the seller snapshot embedded in an offer response.
type OwnerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	City        string `json:"city,omitempty"`
	Voivodeship string `json:"voivodeship,omitempty"`
}

// OfferResponse describes one offer returned by the API.
type OfferResponse struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	BasePrice   float64       `json:"basePrice"`
	Category    string        `json:"category"`
	Owner       OwnerResponse `json:"owner"`
}

func toOfferResponse(offer domain.Offer) OfferResponse {
	return OfferResponse{
		ID:          offer.ID.String(),
		Date:        offer.Date,
		Title:       offer.Title,
		Description: offer.Description,
		BasePrice:   offer.BasePrice,
		Category:    offer.Category,
		Owner: OwnerResponse{
			ID:          offer.Owner.ID.String(),
			Name:        offer.Owner.Name,
			Email:       offer.Owner.Email,
			Phone:       offer.Owner.Phone,
			City:        offer.Owner.City,
			Voivodeship: offer.Owner.Voivodeship,
		},
	}
}

func toOfferPageResponse(page domain.Page[domain.Offer]) domain.Page[OfferResponse] {
	content := make([]OfferResponse, 0, len(page.Content))
	for _, offer := range page.Content {
		content = append(content, toOfferResponse(offer))
	}
	return domain.Page[OfferResponse]{
		Content:       content,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

// OfferRequest defines the payload for creating or updating an offer.
type OfferRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice" binding:"required"`
	Category    string  `json:"category" binding:"required"`
}

// InvoiceRequest carries billing data for registration.
type InvoiceRequest struct {
	CompanyName string `json:"companyName"`
	NIP         string `json:"nip"`
	Street      string `json:"street"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`
}

// RegisterUserRequest defines the registration payload.
type RegisterUserRequest struct {
	Name             string          `json:"name" binding:"required"`
	Surname          string          `json:"surname" binding:"required"`
	Email            string          `json:"email" binding:"required"`
	Password         string          `json:"password" binding:"required"`
	Phone            string          `json:"phone"`
	BankAccount      string          `json:"bankAccount"`
	Street           string          `json:"street"`
	City             string          `json:"city"`
	ZipCode          string          `json:"zipCode"`
	Voivodeship      string          `json:"voivodeship"`
	InvoiceRequested bool            `json:"invoiceRequested"`
	Invoice          *InvoiceRequest `json:"invoice"`
	AdditionalInfo   string          `json:"additionalInfo"`
}

// UserResponse describes an account returned by the API.
type UserResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Surname          string          `json:"surname"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone,omitempty"`
	BankAccount      string          `json:"bankAccount,omitempty"`
	Street           string          `json:"street,omitempty"`
	City             string          `json:"city,omitempty"`
	ZipCode          string          `json:"zipCode,omitempty"`
	Voivodeship      string          `json:"voivodeship,omitempty"`
	InvoiceRequested bool            `json:"invoiceRequested"`
	Invoice          *InvoiceRequest `json:"invoice,omitempty"`
	AdditionalInfo   string          `json:"additionalInfo,omitempty"`
	Roles            []string        `json:"roles"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func toUserResponse(user domain.User) UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	var invoice *InvoiceRequest
	if user.Invoice != nil {
		invoice = &InvoiceRequest{
			CompanyName: user.Invoice.CompanyName,
			NIP:         user.Invoice.NIP,
			Street:      user.Invoice.Street,
			City:        user.Invoice.City,
			ZipCode:     user.Invoice.ZipCode,
		}
	}

	return UserResponse{
		ID:               user.ID.String(),
		Name:             user.Name,
		Surname:          user.Surname,
		Email:            user.Email,
		Phone:            user.Phone,
		BankAccount:      user.BankAccount,
		Street:           user.Address.Street,
		City:             user.Address.City,
		ZipCode:          user.Address.ZipCode,
		Voivodeship:      user.Voivodeship,
		InvoiceRequested: user.InvoiceRequested,
		Invoice:          invoice,
		AdditionalInfo:   user.AdditionalInfo,
		Roles:            roles,
		CreatedAt:        user.CreatedAt,
	}
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse describes the response returned for a successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userId"`
}

// VoivodeshipResponse describes one reference-data entry.
type VoivodeshipResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HealthResponse reports liveness information.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
