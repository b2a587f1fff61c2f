package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-url-admin/metrics"
	"go-url-admin/types"
)

// Backend routes, relative to the API base address.
const (
	ShortenPath    = "/api/v1.0/Url/shorten"
	GraphQLPath    = "/graphql/endpoint"
	ManagementPath = "/api/v1.0/UrlManagement"
)

// RequestIDHeader carries a per-request correlation id to the backend.
const RequestIDHeader = "X-Request-ID"

const urlsQuery = `query ($skip: Int!, $take: Int!) {
  urls(skip: $skip, take: $take, order: [{createdAt: DESC}]) {
    items { id originalUrl shortUrl createdAt accessCount }
  }
}`

var errInvalidJSON = errors.New("invalid response body: not JSON")

// RemoteStorage implements the Storage interface against the remote shortening API.
type RemoteStorage struct {
	client  *resty.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRemoteStorage creates a RemoteStorage for the API at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewRemoteStorage(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *RemoteStorage {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &RemoteStorage{client: client, metrics: m, logger: logger}
}

func (s *RemoteStorage) request(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString())
}

// Create submits originalURL for shortening and returns the created record.
func (s *RemoteStorage) Create(ctx context.Context, originalURL string) (types.ShortenedURL, error) {
	start := time.Now()
	resp, err := s.request(ctx).
		SetBody(types.ShortenRequest{OriginalURL: originalURL}).
		Post(ShortenPath)
	if err != nil {
		s.observe("create", metrics.OutcomeTransport, start)
		s.logger.Error("Create request failed", zap.String("originalURL", originalURL), zap.Error(err))
		return types.ShortenedURL{}, err
	}
	if !resp.IsSuccess() {
		s.observe("create", metrics.OutcomeHTTPError, start)
		s.logger.Warn("Create request rejected",
			zap.String("originalURL", originalURL),
			zap.Int("status", resp.StatusCode()))
		return types.ShortenedURL{}, &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	if !json.Valid(resp.Body()) {
		s.observe("create", metrics.OutcomeTransport, start)
		s.logger.Error("Malformed create response", zap.Int("status", resp.StatusCode()))
		return types.ShortenedURL{}, errInvalidJSON
	}

	// Any JSON result counts as created; the record itself is informational.
	var created types.ShortenedURL
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		s.logger.Warn("Create response is not a URL record", zap.Error(err))
	}

	s.observe("create", metrics.OutcomeSuccess, start)
	s.logger.Info("Short URL created",
		zap.Int64("id", created.ID),
		zap.String("shortURL", created.ShortURL),
		zap.String("originalURL", originalURL))
	return created, nil
}

// List returns up to take records, newest first, skipping the first skip.
func (s *RemoteStorage) List(ctx context.Context, skip, take int) ([]types.ShortenedURL, error) {
	start := time.Now()
	resp, err := s.request(ctx).
		SetBody(types.GraphQLRequest{
			Query:     urlsQuery,
			Variables: map[string]any{"skip": skip, "take": take},
		}).
		Post(GraphQLPath)
	if err != nil {
		s.observe("list", metrics.OutcomeTransport, start)
		s.logger.Error("List request failed", zap.Error(err))
		return nil, err
	}
	if !resp.IsSuccess() {
		s.observe("list", metrics.OutcomeHTTPError, start)
		s.logger.Warn("List request rejected", zap.Int("status", resp.StatusCode()))
		return nil, &StatusError{StatusCode: resp.StatusCode()}
	}

	var result types.URLsQueryResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		s.observe("list", metrics.OutcomeTransport, start)
		s.logger.Error("Malformed list response", zap.Error(err))
		return nil, fmt.Errorf("invalid response body: %w", err)
	}
	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			messages = append(messages, e.Message)
		}
		s.observe("list", metrics.OutcomeQuery, start)
		s.logger.Warn("List query returned errors", zap.Strings("errors", messages))
		return nil, &QueryError{Messages: messages}
	}

	s.observe("list", metrics.OutcomeSuccess, start)
	if result.Data == nil || result.Data.URLs == nil {
		return []types.ShortenedURL{}, nil
	}
	s.logger.Debug("URLs listed", zap.Int("count", len(result.Data.URLs.Items)))
	return result.Data.URLs.Items, nil
}

// Update replaces the original URL of the record identified by req.ID.
func (s *RemoteStorage) Update(ctx context.Context, req types.UpdateRequest) error {
	start := time.Now()
	resp, err := s.request(ctx).
		SetBody(req).
		Put(ManagementPath)
	if err != nil {
		s.observe("update", metrics.OutcomeTransport, start)
		s.logger.Error("Update request failed", zap.Int64("id", req.ID), zap.Error(err))
		return err
	}
	if !resp.IsSuccess() {
		s.observe("update", metrics.OutcomeHTTPError, start)
		s.logger.Warn("Update request rejected", zap.Int64("id", req.ID), zap.Int("status", resp.StatusCode()))
		return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	s.observe("update", metrics.OutcomeSuccess, start)
	s.logger.Info("Short URL updated",
		zap.Int64("id", req.ID),
		zap.String("shortURL", req.ShortURL),
		zap.String("newURL", req.OriginalURL))
	return nil
}

// Delete removes the record identified by id.
func (s *RemoteStorage) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	resp, err := s.request(ctx).
		Delete(ManagementPath + "/" + strconv.FormatInt(id, 10))
	if err != nil {
		s.observe("delete", metrics.OutcomeTransport, start)
		s.logger.Error("Delete request failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if !resp.IsSuccess() {
		s.observe("delete", metrics.OutcomeHTTPError, start)
		s.logger.Warn("Delete request rejected", zap.Int64("id", id), zap.Int("status", resp.StatusCode()))
		return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	s.observe("delete", metrics.OutcomeSuccess, start)
	s.logger.Info("Short URL deleted", zap.Int64("id", id))
	return nil
}

func (s *RemoteStorage) observe(operation, outcome string, start time.Time) {
	s.metrics.ObserveAPI(operation, outcome, time.Since(start))
}

// IsTransportError reports whether err came from the network rather than from a
// backend response.
func IsTransportError(err error) bool {
	var statusErr *StatusError
	var queryErr *QueryError
	return err != nil && !errors.As(err, &statusErr) && !errors.As(err, &queryErr)
}
