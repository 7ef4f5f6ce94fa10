package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

// ErrorCase pairs a sentinel error with the status and message it renders as.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError renders err as an HTTP response. Field-level
// validation errors take precedence and always render their violations map;
// otherwise the first matching case wins, and anything unmatched gets the
// fallback.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:      "validation failed",
			Violations: validation.Violations,
		})
		return
	}

	for _, mapped := range cases {
		if mapped.Err != nil && errors.Is(err, mapped.Err) {
			c.JSON(mapped.Status, NewErrorResponse(c, mapped.Message))
			return
		}
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
