package room

import "time"

type Room struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateRoomRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=100"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type UpdateRoomRequest struct {
	Title    *string `json:"title,omitempty" binding:"omitempty,min=2,max=100"`
	Capacity *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
}
