// Package types defines the data structures shared by the URL admin console.
package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ShortenedURL is a record as returned by the shortening backend.
type ShortenedURL struct {
	ID          int64     `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	AccessCount int64     `json:"accessCount"`
}

// timestampLayouts are the createdAt forms accepted from the backend. Values
// without an offset are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// UnmarshalJSON decodes a record, accepting createdAt with or without a zone offset.
func (u *ShortenedURL) UnmarshalJSON(data []byte) error {
	type record ShortenedURL
	aux := struct {
		*record
		CreatedAt *string `json:"createdAt"`
	}{record: (*record)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt == nil || *aux.CreatedAt == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *aux.CreatedAt); err == nil {
			u.CreatedAt = t
			return nil
		}
	}
	return fmt.Errorf("invalid createdAt %q", *aux.CreatedAt)
}

// ShortenRequest is the body of a create request.
type ShortenRequest struct {
	OriginalURL string `json:"originalUrl" validate:"required,url"`
}

// UpdateRequest is the body of an update request. ShortURL is round-tripped
// unchanged from the record being edited.
type UpdateRequest struct {
	ID          int64  `json:"id"`
	OriginalURL string `json:"originalUrl" validate:"required,url"`
	ShortURL    string `json:"shortUrl"`
}

// GraphQLRequest is the envelope posted to the query endpoint.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLError is a single entry of a query-level "errors" array.
type GraphQLError struct {
	Message string `json:"message"`
}

// URLsQueryResponse is the response envelope of the urls query.
type URLsQueryResponse struct {
	Data *struct {
		URLs *struct {
			Items []ShortenedURL `json:"items"`
		} `json:"urls"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient message shown in the alert area.
type Notice struct {
	ID        uint64     `json:"id"`
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Table is the content of the URL table: either rows, or a load error.
// No rows and no error means the empty-state placeholder is shown.
type Table struct {
	Rows  []ShortenedURL `json:"rows"`
	Error string         `json:"error,omitempty"`
}

// Empty reports whether the table should show the empty-state placeholder.
func (t Table) Empty() bool {
	return t.Error == "" && len(t.Rows) == 0
}

// EditSession identifies the record targeted by an open edit dialog.
type EditSession struct {
	ID          int64
	ShortURL    string
	OriginalURL string
	open        bool
}

// Open populates the session for the given record.
func (s *EditSession) Open(id int64, originalURL, shortURL string) {
	s.ID = id
	s.OriginalURL = originalURL
	s.ShortURL = shortURL
	s.open = true
}

// Close clears the session.
func (s *EditSession) Close() {
	*s = EditSession{}
}

// IsOpen reports whether the edit dialog is open.
func (s *EditSession) IsOpen() bool {
	return s != nil && s.open
}

// Outcome is what a mutating console operation hands back to its front-end.
type Outcome struct {
	// Input is what the input field should contain afterwards.
	Input string
	// Table is set when the operation reloaded the list.
	Table *Table
}
