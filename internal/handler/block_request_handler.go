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

// BlockRequestHandler handles card block-request endpoints.
type BlockRequestHandler struct {
	blockService service.BlockRequestService
}

// NewBlockRequestHandler creates a new block-request handler.
func NewBlockRequestHandler(blockService service.BlockRequestService) *BlockRequestHandler {
	return &BlockRequestHandler{blockService: blockService}
}

// CreateBlockRequest godoc
// @Summary Request a block on one of the user's cards
// @Tags block-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 201 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cards/{id}/block-request [post]
func (h *BlockRequestHandler) CreateBlockRequest(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	cardID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.blockService.Create(c.Request().Context(), user, cardID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "block request created"})
}

// ListOwnBlockRequests godoc
// @Summary List the authenticated user's block requests
// @Tags block-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.BlockRequest
// @Router /cards/block-requests/own [get]
func (h *BlockRequestHandler) ListOwnBlockRequests(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	requests, err := h.blockService.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, requests)
}

// ListUserBlockRequests godoc
// @Summary List block requests of a given user
// @Tags block-requests
// @Produce json
// @Security BearerAuth
// @Param user_id query int true "User ID"
// @Success 200 {array} model.BlockRequest
// @Router /cards/block-requests [get]
func (h *BlockRequestHandler) ListUserBlockRequests(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	requests, err := h.blockService.ListForUser(c.Request().Context(), uint(userID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, requests)
}

// MarkInProgress godoc
// @Summary Set a block request to IN_PROGRESS
// @Tags block-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Block request ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/block-requests/{id}/progress [post]
func (h *BlockRequestHandler) MarkInProgress(c echo.Context) error {
	return h.setStatus(c, model.BlockRequestStatusInProgress)
}

// MarkDone godoc
// @Summary Set a block request to DONE
// @Tags block-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Block request ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /cards/block-requests/{id}/done [post]
func (h *BlockRequestHandler) MarkDone(c echo.Context) error {
	return h.setStatus(c, model.BlockRequestStatusDone)
}

func (h *BlockRequestHandler) setStatus(c echo.Context, status model.BlockRequestStatus) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.blockService.SetStatus(c.Request().Context(), requestID, status); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "block request status updated"})
}
