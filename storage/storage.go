// Package storage provides interfaces and common errors for the shortening backends
// the console talks to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-url-admin/types"
)

// Common errors returned by storage operations.
var (
	ErrURLNotFound            = errors.New("URL not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
	ErrShortURLMismatch       = errors.New("short URL does not match record")
)

// Storage interface defines the operations the console performs against a backend.
type Storage interface {
	Create(ctx context.Context, originalURL string) (types.ShortenedURL, error)
	List(ctx context.Context, skip, take int) ([]types.ShortenedURL, error)
	Update(ctx context.Context, req types.UpdateRequest) error
	Delete(ctx context.Context, id int64) error
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Server error: %d", e.StatusCode)
	}
	return fmt.Sprintf("Server error: %d - %s", e.StatusCode, e.Body)
}

// QueryError is returned when a query response carries a non-empty errors array.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return "GraphQL error: " + strings.Join(e.Messages, ", ")
}
