// Package status implements the client health-check ping endpoints.
package status

import "time"

// Check is a single health-check ping recorded by a client.
type Check struct {
	ID         string    `json:"id" db:"id"`
	ClientName string    `json:"client_name" db:"client_name"`
	Timestamp  time.Time `json:"timestamp" db:"recorded_at"`
}

// CreateCheckRequest carries the POST /status payload.
type CreateCheckRequest struct {
	ClientName string `json:"client_name" validate:"required,max=200"`
}
