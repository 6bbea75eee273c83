package service

import "github.com/google/uuid"

// Actor is the authenticated user performing an operation, extracted from
// the JWT by the auth middleware.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}
