package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListSubscriptions godoc
// @Summary      List subscription plans
// @Tags         subscriptions
// @Produce      json
// @Success      200  {array}   Subscription
// @Failure      500  {object}  api.ErrorResponse
// @Router       /subscriptions [get]
func (h *Handler) ListSubscriptions(c *gin.Context) {
	subs, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// CreateSubscription godoc
// @Summary      Create subscription plan
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSubscriptionRequest  true  "Plan payload"
// @Success      201   {object}  Subscription
// @Failure      400   {object}  api.ErrorResponse
// @Router       /admin/subscriptions [post]
func (h *Handler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.repo.Create(c.Request.Context(), req.Title, req.Price, req.DurationDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// UpdateSubscription godoc
// @Summary      Update subscription plan
// @Description  Edits the template only; already granted memberships keep their dates.
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        subID  path      int                        true  "Subscription ID"
// @Param        body   body      UpdateSubscriptionRequest  true  "Fields to update"
// @Success      200    {object}  Subscription
// @Failure      400    {object}  api.ErrorResponse
// @Failure      404    {object}  api.ErrorResponse
// @Router       /admin/subscriptions/{subID} [patch]
func (h *Handler) UpdateSubscription(c *gin.Context) {
	subID, err := strconv.Atoi(c.Param("subID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid subscription ID"})
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.repo.Update(c.Request.Context(), subID, req.Title, req.Price, req.DurationDays)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// DeleteSubscription godoc
// @Summary      Delete subscription plan
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        subID  path      int  true  "Subscription ID"
// @Success      200    {object}  api.MessageResponse
// @Failure      400    {object}  api.ErrorResponse
// @Failure      404    {object}  api.ErrorResponse
// @Router       /admin/subscriptions/{subID} [delete]
func (h *Handler) DeleteSubscription(c *gin.Context) {
	subID, err := strconv.Atoi(c.Param("subID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid subscription ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), subID); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete subscription"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscription deleted"})
}
