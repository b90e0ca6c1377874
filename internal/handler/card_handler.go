package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bankcards/internal/auth"
	"bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/service"
)

// CardHandler handles card management endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// IssueCardRequest represents a card issuance request.
type IssueCardRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// IssueCard godoc
// @Summary Issue a new card for a user
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IssueCardRequest true "Card owner"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) IssueCard(c echo.Context) error {
	var req IssueCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.cardService.Issue(c.Request().Context(), req.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "card issued",
		"card_id": card.ID,
	})
}

// BlockCard godoc
// @Summary Block a card
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{id}/block [post]
func (h *CardHandler) BlockCard(c echo.Context) error {
	return h.changeStatus(c, model.CardStatusBlocked)
}

// ActivateCard godoc
// @Summary Activate a card
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{id}/activate [post]
func (h *CardHandler) ActivateCard(c echo.Context) error {
	return h.changeStatus(c, model.CardStatusActive)
}

func (h *CardHandler) changeStatus(c echo.Context, status model.CardStatus) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.cardService.ChangeStatus(c.Request().Context(), cardID, status); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "card status updated"})
}

// DeleteCard godoc
// @Summary Delete a card
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c echo.Context) error {
	cardID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.cardService.Delete(c.Request().Context(), cardID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "card deleted"})
}

// ListAllCards godoc
// @Summary List all cards with decrypted numbers
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.AdminCard
// @Router /cards [get]
func (h *CardHandler) ListAllCards(c echo.Context) error {
	cards, err := h.cardService.ListAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cards)
}

// ListOwnCards godoc
// @Summary List the authenticated user's cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param search query string false "Card number search term"
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} service.CardPage
// @Router /cards/view [get]
func (h *CardHandler) ListOwnCards(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.cardService.ListForOwner(c.Request().Context(), user.ID, c.QueryParam("search"), page, size)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}
