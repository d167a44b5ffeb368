package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kiranapos/kirana/internal/bill/cart"
	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/providers/message"
	reportdomain "github.com/kiranapos/kirana/internal/report/domain"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrInternal           = errors.New("internal_error")
	ErrPrinterUnavailable = errors.New("printer_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, settingsdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrPrinterUnavailable):
		return http.StatusBadGateway, errorPayload{
			Type:    "printer_unavailable",
			Message: "printer unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, itemdomain.ErrInvalidName),
		errors.Is(err, itemdomain.ErrInvalidBarcode),
		errors.Is(err, itemdomain.ErrInvalidCategory),
		errors.Is(err, itemdomain.ErrInvalidPrice),
		errors.Is(err, itemdomain.ErrInvalidTaxRate),
		errors.Is(err, itemdomain.ErrInvalidQuantity),
		errors.Is(err, billdomain.ErrEmptyBill),
		errors.Is(err, billdomain.ErrInvalidCustomerName),
		errors.Is(err, billdomain.ErrInvalidPhone),
		errors.Is(err, billdomain.ErrInvalidQuantity),
		errors.Is(err, settingsdomain.ErrInvalidPaperWidth),
		errors.Is(err, reportdomain.ErrInvalidRange),
		errors.Is(err, message.ErrNoPhone):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, itemdomain.ErrDuplicateBarcode),
		errors.Is(err, itemdomain.ErrDuplicateItem),
		errors.Is(err, itemdomain.ErrDuplicateCategory),
		errors.Is(err, message.ErrSendInFlight):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, itemdomain.ErrItemNotFound),
		errors.Is(err, itemdomain.ErrCategoryNotFound),
		errors.Is(err, billdomain.ErrBillNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, settingsdomain.ErrSettingsNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
