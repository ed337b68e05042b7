// Package api holds the response envelopes shared by every handler, so
// swagger schemas stay in one place.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// SweepResponse reports how many memberships a sweep pass expired.
type SweepResponse struct {
	Expired int `json:"expired" example:"3"`
}
