package membership

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/subscription"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SubmitRequest godoc
// @Summary      Request a subscription
// @Description  Files a pending request for admin review. Rejected while the user holds an active membership or another pending request.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSubRequestRequest  true  "Subscription to request"
// @Success      201   {object}  SubRequest
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      409   {object}  api.ErrorResponse
// @Router       /memberships/request [post]
func (h *Handler) SubmitRequest(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateSubRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), userID, req.SubscriptionID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMyMemberships godoc
// @Summary      List the authenticated user's memberships
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   MembershipInfo
// @Failure      500  {object}  api.ErrorResponse
// @Router       /memberships/my [get]
func (h *Handler) ListMyMemberships(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	memberships, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// ListPendingRequests godoc
// @Summary      List pending subscription requests
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   SubRequestInfo
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/requests [get]
func (h *Handler) ListPendingRequests(c *gin.Context) {
	requests, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ResolveRequest godoc
// @Summary      Approve or reject a subscription request
// @Description  Approval creates an active membership starting today. Both outcomes are terminal.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        requestID  path      int                       true  "Request ID"
// @Param        body       body      ResolveSubRequestRequest  true  "Decision"
// @Success      200        {object}  Membership
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /admin/requests/{requestID} [patch]
func (h *Handler) ResolveRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request ID"})
		return
	}

	var req ResolveSubRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Resolve(c.Request.Context(), requestID, req.Decision)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	if m == nil {
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Request rejected"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// SweepMemberships godoc
// @Summary      Expire ended memberships now
// @Description  Same pass the background sweeper runs on its interval. Idempotent.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.SweepResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/memberships/sweep [post]
func (h *Handler) SweepMemberships(c *gin.Context) {
	count, err := h.service.Sweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Sweep failed"})
		return
	}

	c.JSON(http.StatusOK, api.SweepResponse{Expired: count})
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Subscription not found"})
	case errors.Is(err, ErrSubRequestNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Request not found"})
	case errors.Is(err, ErrActiveMembershipExists), errors.Is(err, ErrPendingRequestExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrRequestAlreadyResolved), errors.Is(err, ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}
