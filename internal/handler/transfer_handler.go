package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bankcards/internal/auth"
	"bankcards/internal/errors"
	"bankcards/internal/service"
)

// TransferHandler handles balance-transfer endpoints.
type TransferHandler struct {
	transferService service.TransferService
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// TransferRequest represents a transfer between two of the user's cards.
type TransferRequest struct {
	CardFrom string `json:"card_from" validate:"required,len=16,numeric"`
	CardTo   string `json:"card_to" validate:"required,len=16,numeric"`
	Amount   string `json:"amount" validate:"required"`
}

// Transfer godoc
// @Summary Transfer money between the user's own cards
// @Tags balance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "Transfer data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /balance/transfer [post]
func (h *TransferHandler) Transfer(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req TransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid amount",
			Code:  "INVALID_AMOUNT",
		})
	}
	// Two-decimal fixed point on the wire and in storage.
	amount = amount.Round(2)

	if err := h.transferService.Transfer(c.Request().Context(), user, req.CardFrom, req.CardTo, amount); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "transfer completed"})
}
