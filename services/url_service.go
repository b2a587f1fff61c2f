// Package services implements the console operations on top of a storage backend.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-url-admin/notices"
	"go-url-admin/storage"
	"go-url-admin/types"
)

// Messages shown to the operator.
const (
	MsgEmptyURL       = "Please enter a URL"
	MsgInvalidURL     = "Please enter a valid URL (must start with http:// or https://)"
	MsgShortened      = "URL successfully shortened!"
	MsgDeleted        = "URL successfully deleted!"
	MsgUpdated        = "URL successfully updated!"
	MsgShortenFailed  = "Error shortening URL: "
	MsgLoadFailed     = "Error loading data: "
	MsgDeleteFailed   = "Error deleting URL: "
	MsgUpdateFailed   = "Error updating URL: "
	MsgNoEditSession  = "No URL selected for editing"
	DefaultListLength = 50
)

var (
	ErrEmptyURL               = errors.New("empty URL")
	ErrInvalidURL             = errors.New("invalid URL")
	ErrNotConfirmed           = errors.New("deletion not confirmed")
	ErrNoEditSession          = errors.New("no edit session open")
	ErrSuperseded             = errors.New("superseded by a newer request")
	ErrURLNotFound            = errors.New("URL not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrStorageCapacityReached
	case errors.Is(err, storage.ErrURLNotFound):
		return ErrURLNotFound
	default:
		return err
	}
}

// URLService is the operator-facing API of the console. Every operation reports
// its result on the notice board in addition to returning it.
type URLService interface {
	ShortenURL(ctx context.Context, input string) (types.Outcome, error)
	LoadURLs(ctx context.Context) (types.Table, error)
	DeleteURL(ctx context.Context, id int64, confirmer Confirmer) (types.Outcome, error)
	UpdateURL(ctx context.Context, session *types.EditSession, input string) (types.Outcome, error)
	Busy() map[string]bool
}

type urlService struct {
	store    storage.Storage
	board    *notices.Board
	tracker  *Tracker
	validate *validator.Validate
	pageSize int
	logger   *zap.Logger
}

// NewURLService creates a URLService reading up to pageSize records per list load.
func NewURLService(store storage.Storage, board *notices.Board, pageSize int, logger *zap.Logger) URLService {
	if pageSize <= 0 {
		pageSize = DefaultListLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &urlService{
		store:    store,
		board:    board,
		tracker:  NewTracker(),
		validate: validator.New(),
		pageSize: pageSize,
		logger:   logger,
	}
}

// checkURL trims input and validates it, pushing the matching notice on failure.
func (s *urlService) checkURL(input string) (string, error) {
	url := strings.TrimSpace(input)
	if url == "" {
		s.board.Error(MsgEmptyURL)
		return "", ErrEmptyURL
	}
	if err := s.validate.Struct(types.ShortenRequest{OriginalURL: url}); err != nil {
		s.logger.Debug("Rejected URL input", zap.String("input", url), zap.Error(err))
		s.board.Error(MsgInvalidURL)
		return "", ErrInvalidURL
	}
	return url, nil
}

func (s *urlService) ShortenURL(ctx context.Context, input string) (types.Outcome, error) {
	url, err := s.checkURL(input)
	if err != nil {
		return types.Outcome{Input: input}, err
	}

	callCtx, flight := s.tracker.Begin(ctx, OpShorten, "")
	created, err := s.store.Create(callCtx, url)
	flight.Done()
	if err != nil {
		s.logger.Warn("Shortening failed", zap.String("originalURL", url), zap.Error(err))
		s.board.Error(MsgShortenFailed + err.Error())
		return types.Outcome{Input: input}, handleStorageError(err)
	}

	s.logger.Info("URL shortened", zap.Int64("id", created.ID), zap.String("shortURL", created.ShortURL))
	s.board.Success(MsgShortened)
	return s.reloaded(ctx, ""), nil
}

func (s *urlService) LoadURLs(ctx context.Context) (types.Table, error) {
	callCtx, flight := s.tracker.Begin(ctx, OpRefresh, "list")
	defer flight.Done()

	urls, err := s.store.List(callCtx, 0, s.pageSize)
	if flight.Superseded() {
		s.logger.Debug("List load superseded")
		return types.Table{}, ErrSuperseded
	}
	if err != nil {
		s.logger.Warn("Loading URLs failed", zap.Error(err))
		s.board.Error(MsgLoadFailed + err.Error())
		return types.Table{Error: err.Error()}, handleStorageError(err)
	}
	if urls == nil {
		urls = []types.ShortenedURL{}
	}
	return types.Table{Rows: urls}, nil
}

func (s *urlService) DeleteURL(ctx context.Context, id int64, confirmer Confirmer) (types.Outcome, error) {
	if confirmer == nil || !confirmer.Confirm(DeletePrompt) {
		s.logger.Debug("Deletion declined", zap.Int64("id", id))
		return types.Outcome{}, ErrNotConfirmed
	}

	callCtx, flight := s.tracker.Begin(ctx, OpDelete, "delete:"+strconv.FormatInt(id, 10))
	err := s.store.Delete(callCtx, id)
	superseded := flight.Superseded()
	flight.Done()
	if superseded {
		s.logger.Debug("Deletion superseded", zap.Int64("id", id))
		return types.Outcome{}, ErrSuperseded
	}
	if err != nil {
		s.logger.Warn("Deletion failed", zap.Int64("id", id), zap.Error(err))
		s.board.Error(MsgDeleteFailed + err.Error())
		return types.Outcome{}, handleStorageError(err)
	}

	s.logger.Info("URL deleted", zap.Int64("id", id))
	s.board.Success(MsgDeleted)
	return s.reloaded(ctx, ""), nil
}

func (s *urlService) UpdateURL(ctx context.Context, session *types.EditSession, input string) (types.Outcome, error) {
	if !session.IsOpen() {
		s.board.Error(MsgNoEditSession)
		return types.Outcome{Input: input}, ErrNoEditSession
	}
	url, err := s.checkURL(input)
	if err != nil {
		return types.Outcome{Input: input}, err
	}

	req := types.UpdateRequest{ID: session.ID, OriginalURL: url, ShortURL: session.ShortURL}
	callCtx, flight := s.tracker.Begin(ctx, OpUpdate, "update:"+strconv.FormatInt(session.ID, 10))
	err = s.store.Update(callCtx, req)
	superseded := flight.Superseded()
	flight.Done()
	if superseded {
		s.logger.Debug("Update superseded", zap.Int64("id", req.ID))
		return types.Outcome{Input: input}, ErrSuperseded
	}
	if err != nil {
		s.logger.Warn("Update failed", zap.Int64("id", req.ID), zap.Error(err))
		s.board.Error(MsgUpdateFailed + err.Error())
		return types.Outcome{Input: input}, handleStorageError(err)
	}

	s.logger.Info("URL updated", zap.Int64("id", req.ID), zap.String("newURL", url))
	s.board.Success(MsgUpdated)
	session.Close()
	return s.reloaded(ctx, ""), nil
}

func (s *urlService) Busy() map[string]bool {
	return map[string]bool{
		OpShorten: s.tracker.Busy(OpShorten),
		OpRefresh: s.tracker.Busy(OpRefresh),
		OpUpdate:  s.tracker.Busy(OpUpdate),
	}
}

// reloaded performs the single list reload that follows a successful mutation.
// A reload superseded by a newer one leaves Table unset.
func (s *urlService) reloaded(ctx context.Context, input string) types.Outcome {
	out := types.Outcome{Input: input}
	table, err := s.LoadURLs(ctx)
	if !errors.Is(err, ErrSuperseded) {
		out.Table = &table
	}
	return out
}
