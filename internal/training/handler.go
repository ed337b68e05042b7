package training

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/cache"
	"gymdesk/internal/room"
)

type Handler struct {
	service Service
	cache   *cache.Client
}

func NewHandler(service Service, scheduleCache *cache.Client) *Handler {
	return &Handler{service: service, cache: scheduleCache}
}

// ListTrainings godoc
// @Summary      List upcoming trainings
// @Description  Today's and future trainings with room title and booking count.
// @Tags         trainings
// @Produce      json
// @Success      200  {array}   TrainingInfo
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainings [get]
func (h *Handler) ListTrainings(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.cache.GetSchedule(ctx); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	trainings, err := h.service.ListUpcoming(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch trainings"})
		return
	}

	if payload, err := json.Marshal(trainings); err == nil {
		h.cache.SetSchedule(ctx, payload)
	}

	c.JSON(http.StatusOK, trainings)
}

// CreateTraining godoc
// @Summary      Create training
// @Description  Rejects the slot when the room or the trainer is already occupied.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateTrainingRequest  true  "Training payload"
// @Success      201   {object}  TrainingInfo
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      409   {object}  api.ErrorResponse
// @Router       /trainings [post]
func (h *Handler) CreateTraining(c *gin.Context) {
	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if verrs := api.ValidateStruct(req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
		return
	}

	info, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.cache.InvalidateSchedule(c.Request.Context())
	c.JSON(http.StatusCreated, info)
}

// UpdateTraining godoc
// @Summary      Update training
// @Description  Owner trainer or admin only. Re-checks conflicts when the slot moves.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        trainingID  path      int                    true  "Training ID"
// @Param        body        body      UpdateTrainingRequest  true  "Fields to update"
// @Success      200         {object}  TrainingInfo
// @Failure      400         {object}  api.ErrorResponse
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  api.ErrorResponse
// @Router       /trainings/{trainingID} [patch]
func (h *Handler) UpdateTraining(c *gin.Context) {
	trainingID, err := strconv.Atoi(c.Param("trainingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid training ID"})
		return
	}

	actorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	actorRole, _ := auth.GetRole(c)

	var req UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if verrs := api.ValidateStruct(req); verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
		return
	}

	info, err := h.service.Update(c.Request.Context(), trainingID, actorID, actorRole, req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.cache.InvalidateSchedule(c.Request.Context())
	c.JSON(http.StatusOK, info)
}

// DeleteTraining godoc
// @Summary      Delete training
// @Description  Owner trainer or admin only. Removes the training's bookings with it.
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        trainingID  path      int  true  "Training ID"
// @Success      200         {object}  api.MessageResponse
// @Failure      400         {object}  api.ErrorResponse
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /trainings/{trainingID} [delete]
func (h *Handler) DeleteTraining(c *gin.Context) {
	trainingID, err := strconv.Atoi(c.Param("trainingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid training ID"})
		return
	}

	actorID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	actorRole, _ := auth.GetRole(c)

	if err := h.service.Delete(c.Request.Context(), trainingID, actorID, actorRole); err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.cache.InvalidateSchedule(c.Request.Context())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Training deleted"})
}

// ListMyTrainings godoc
// @Summary      Trainer's own trainings with participants
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   TrainingWithParticipants
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainings/my [get]
func (h *Handler) ListMyTrainings(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	trainings, err := h.service.ListForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch trainings"})
		return
	}

	c.JSON(http.StatusOK, trainings)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidTimeWindow), errors.Is(err, ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrTrainingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Training not found"})
	case errors.Is(err, ErrTrainerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
	case errors.Is(err, room.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Room not found"})
	case errors.Is(err, ErrRoomTimeConflict), errors.Is(err, ErrTrainerTimeConflict):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotTrainingOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}
