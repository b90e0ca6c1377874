package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user exists for a login or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword is returned when password verification fails.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrUserAlreadyExists is returned when registering a login that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrCardNotFound is returned when a card cannot be resolved.
	ErrCardNotFound = errors.New("card not found")
	// ErrCardNotOwned is returned when a card belongs to another user.
	ErrCardNotOwned = errors.New("card belongs to another user")
	// ErrInsufficientBalance is returned when a debit would drive a balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBlockRequestNotFound is returned when a block request is not found.
	ErrBlockRequestNotFound = errors.New("block request not found")
	// ErrBlockRequestExists is returned when a user already requested a block for the card.
	ErrBlockRequestExists = errors.New("block request already exists")
	// ErrDecryption is returned when a stored card number cannot be decrypted.
	ErrDecryption = errors.New("card number decryption failed")
	// ErrInvalidAmount is returned when a transfer amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSameCardTransfer is returned when source and destination are the same card.
	ErrSameCardTransfer = errors.New("cannot transfer to the same card")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Services may wrap the
// sentinels with identifying payload, so matching uses errors.Is.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrIncorrectPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INCORRECT_PASSWORD")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrCardNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CARD_NOT_FOUND")
	case errors.Is(err, ErrCardNotOwned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "CARD_NOT_OWNED")
	case errors.Is(err, ErrInsufficientBalance):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_BALANCE")
	case errors.Is(err, ErrBlockRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BLOCK_REQUEST_NOT_FOUND")
	case errors.Is(err, ErrBlockRequestExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "BLOCK_REQUEST_EXISTS")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrSameCardTransfer):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SAME_CARD_TRANSFER")
	default:
		// ErrDecryption lands here on purpose: corrupted stored data is a
		// server-side failure, not something the caller can correct.
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
