package room

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

// ListRooms godoc
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {array}   Room
// @Failure      500  {object}  api.ErrorResponse
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary      Create room
// @Tags         rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateRoomRequest  true  "Room payload"
// @Success      201   {object}  Room
// @Failure      400   {object}  api.ErrorResponse
// @Router       /admin/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.repo.Create(c.Request.Context(), req.Title, req.Capacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// UpdateRoom godoc
// @Summary      Update room
// @Tags         rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        roomID  path      int                true  "Room ID"
// @Param        body    body      UpdateRoomRequest  true  "Fields to update"
// @Success      200     {object}  Room
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /admin/rooms/{roomID} [patch]
func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid room ID"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.repo.Update(c.Request.Context(), roomID, req.Title, req.Capacity)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update room"})
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary      Delete room
// @Description  Deletes the room together with its trainings and their bookings.
// @Tags         rooms
// @Security     BearerAuth
// @Produce      json
// @Param        roomID  path      int  true  "Room ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /admin/rooms/{roomID} [delete]
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid room ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), roomID); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete room"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Room deleted"})
}
