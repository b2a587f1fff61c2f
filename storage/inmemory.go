package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"go-url-admin/types"
	"go-url-admin/urlgen"
)

// InMemoryStorage implements the Storage interface with an in-process map. It stands in
// for the remote backend when the console runs as a sandbox.
type InMemoryStorage struct {
	urls     map[int64]types.ShortenedURL
	codes    map[string]int64 // short code to id
	mu       sync.RWMutex
	capacity int
	nextID   int64
	now      func() time.Time
	logger   *zap.Logger
}

// NewInMemoryStorage creates and returns a new InMemoryStorage instance.
func NewInMemoryStorage(capacity int, logger *zap.Logger) *InMemoryStorage {
	if capacity <= 0 {
		capacity = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		urls:     make(map[int64]types.ShortenedURL, capacity),
		codes:    make(map[string]int64, capacity),
		capacity: capacity,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// Create stores originalURL under a freshly generated short code.
func (s *InMemoryStorage) Create(ctx context.Context, originalURL string) (types.ShortenedURL, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("Create operation cancelled", zap.String("originalURL", originalURL))
		return types.ShortenedURL{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.urls) >= s.capacity {
		s.logger.Error("Storage capacity reached", zap.String("originalURL", originalURL))
		return types.ShortenedURL{}, ErrStorageCapacityReached
	}

	code, err := s.uniqueCode()
	if err != nil {
		s.logger.Error("Failed to generate short code", zap.Error(err))
		return types.ShortenedURL{}, err
	}

	s.nextID++
	record := types.ShortenedURL{
		ID:          s.nextID,
		OriginalURL: originalURL,
		ShortURL:    code,
		CreatedAt:   s.now(),
	}
	s.urls[record.ID] = record
	s.codes[code] = record.ID
	s.logger.Info("Short URL created",
		zap.Int64("id", record.ID),
		zap.String("shortURL", code),
		zap.String("originalURL", originalURL))
	return record, nil
}

// uniqueCode must be called with mu held.
func (s *InMemoryStorage) uniqueCode() (string, error) {
	for {
		code, err := urlgen.Generate()
		if err != nil {
			return "", err
		}
		if _, taken := s.codes[code]; !taken {
			return code, nil
		}
	}
}

// List returns up to take records ordered by creation time, newest first.
func (s *InMemoryStorage) List(ctx context.Context, skip, take int) ([]types.ShortenedURL, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	all := make([]types.ShortenedURL, 0, len(s.urls))
	for _, record := range s.urls {
		all = append(all, record)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(all) || take <= 0 {
		return []types.ShortenedURL{}, nil
	}
	end := skip + take
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

// Update replaces the original URL of an existing record. The short code is immutable.
func (s *InMemoryStorage) Update(ctx context.Context, req types.UpdateRequest) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Update operation cancelled", zap.Int64("id", req.ID))
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.urls[req.ID]
	if !exists {
		s.logger.Warn("Attempt to update non-existent URL", zap.Int64("id", req.ID))
		return ErrURLNotFound
	}
	if req.ShortURL != "" && req.ShortURL != record.ShortURL {
		s.logger.Warn("Short URL mismatch on update",
			zap.Int64("id", req.ID),
			zap.String("stored", record.ShortURL),
			zap.String("requested", req.ShortURL))
		return ErrShortURLMismatch
	}

	oldURL := record.OriginalURL
	record.OriginalURL = req.OriginalURL
	s.urls[req.ID] = record
	s.logger.Info("Updated short URL",
		zap.Int64("id", req.ID),
		zap.String("oldURL", oldURL),
		zap.String("newURL", req.OriginalURL))
	return nil
}

// Delete removes the record identified by id.
func (s *InMemoryStorage) Delete(ctx context.Context, id int64) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Delete operation cancelled", zap.Int64("id", id))
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.urls[id]
	if !exists {
		s.logger.Warn("Attempt to delete non-existent URL", zap.Int64("id", id))
		return ErrURLNotFound
	}

	delete(s.urls, id)
	delete(s.codes, record.ShortURL)
	s.logger.Info("Deleted short URL", zap.Int64("id", id), zap.String("shortURL", record.ShortURL))
	return nil
}

// Resolve returns the record behind a short code and counts the access.
func (s *InMemoryStorage) Resolve(ctx context.Context, shortURL string) (types.ShortenedURL, error) {
	select {
	case <-ctx.Done():
		return types.ShortenedURL{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.codes[shortURL]
	if !exists {
		return types.ShortenedURL{}, ErrURLNotFound
	}
	record := s.urls[id]
	record.AccessCount++
	s.urls[id] = record
	return record, nil
}

// Seed fills the storage with n generated records spread over the past month.
// The same seed value always produces the same URLs.
func (s *InMemoryStorage) Seed(ctx context.Context, n int, seed uint64) error {
	faker := gofakeit.New(seed)
	end := s.now()
	start := end.AddDate(0, -1, 0)

	for i := 0; i < n; i++ {
		record, err := s.Create(ctx, faker.URL())
		if err != nil {
			return err
		}

		s.mu.Lock()
		record.CreatedAt = faker.DateRange(start, end).UTC()
		record.AccessCount = int64(faker.Number(0, 500))
		s.urls[record.ID] = record
		s.mu.Unlock()
	}

	s.logger.Info("Sandbox storage seeded", zap.Int("count", n))
	return nil
}
