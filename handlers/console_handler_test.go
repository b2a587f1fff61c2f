package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-url-admin/notices"
	"go-url-admin/services"
	"go-url-admin/storage"
	"go-url-admin/views"
)

type consoleFixture struct {
	router *gin.Engine
	store  *storage.InMemoryStorage
	board  *notices.Board
}

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := storage.NewInMemoryStorage(100, logger)
	board := notices.NewBoard(time.Minute)
	service := services.NewURLService(store, board, 50, logger)

	handler, err := NewURLHandler(context.Background(), service, board, testConfig(), logger, WithResolver(store))
	require.NoError(t, err)
	t.Cleanup(handler.Close)

	router := gin.New()
	router.SetHTMLTemplate(views.Must(views.Options{Location: time.UTC}))
	RegisterRoutes(router, handler, testConfig(), nil)
	return &consoleFixture{router: router, store: store, board: board}
}

func (f *consoleFixture) get(path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func (f *consoleFixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func TestConsoleIndex(t *testing.T) {
	f := newConsoleFixture(t)

	resp := f.get("/")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "📝 No shortened URLs yet")
}

func TestConsoleShorten(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newConsoleFixture(t)

		resp := f.post("/urls", url.Values{"originalUrl": {"https://example.com/page"}})

		require.Equal(t, http.StatusOK, resp.Code)
		body := resp.Body.String()
		assert.Contains(t, body, services.MsgShortened)
		assert.Contains(t, body, `title="https://example.com/page"`)
		assert.Contains(t, body, `id="originalUrl" name="originalUrl" placeholder="https://example.com/very/long/url" value=""`)
		assert.NotContains(t, body, "No shortened URLs yet")
	})

	t.Run("Empty input", func(t *testing.T) {
		f := newConsoleFixture(t)

		resp := f.post("/urls", url.Values{"originalUrl": {"  "}})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), services.MsgEmptyURL)
	})

	t.Run("Invalid input is kept", func(t *testing.T) {
		f := newConsoleFixture(t)

		resp := f.post("/urls", url.Values{"originalUrl": {"example"}})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		body := resp.Body.String()
		assert.Contains(t, body, "Please enter a valid URL (must start with http:// or https://)")
		assert.Contains(t, body, `value="example"`)
	})
}

func TestConsoleEditFlow(t *testing.T) {
	f := newConsoleFixture(t)
	record, err := f.store.Create(context.Background(), "https://old.example.com")
	require.NoError(t, err)

	t.Run("Open", func(t *testing.T) {
		resp := f.get("/urls/1/edit?originalUrl=" + url.QueryEscape(record.OriginalURL) + "&shortUrl=" + record.ShortURL)

		require.Equal(t, http.StatusOK, resp.Code)
		body := resp.Body.String()
		assert.Contains(t, body, `id="editModal"`)
		assert.Contains(t, body, `name="shortUrl" value="`+record.ShortURL+`"`)
	})

	t.Run("Invalid input keeps dialog open", func(t *testing.T) {
		resp := f.post("/urls/1/update", url.Values{"originalUrl": {"nope"}, "shortUrl": {record.ShortURL}})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), `id="editModal"`)
	})

	t.Run("Close", func(t *testing.T) {
		resp := f.get("/edit/close")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.NotContains(t, resp.Body.String(), `id="editModal"`)
	})

	t.Run("Dialog links close it", func(t *testing.T) {
		resp := f.get("/urls/1/edit?originalUrl=" + url.QueryEscape(record.OriginalURL) + "&shortUrl=" + record.ShortURL)
		require.Equal(t, http.StatusOK, resp.Code)
		body := resp.Body.String()

		for _, pattern := range []string{
			`<a href="([^"]+)" class="btn btn-secondary" id="editCancel">`,
			`<a href="([^"]+)" class="modal-backdrop" id="editBackdrop"`,
		} {
			match := regexp.MustCompile(pattern).FindStringSubmatch(body)
			require.Len(t, match, 2, "Edit dialog should render %s", pattern)

			closed := f.get(match[1])

			require.Equal(t, http.StatusOK, closed.Code, "GET %s", match[1])
			assert.NotContains(t, closed.Body.String(), `id="editModal"`)
		}
	})

	t.Run("Save", func(t *testing.T) {
		resp := f.post("/urls/1/update", url.Values{"originalUrl": {"https://new.example.com"}, "shortUrl": {record.ShortURL}})

		require.Equal(t, http.StatusOK, resp.Code)
		body := resp.Body.String()
		assert.Contains(t, body, services.MsgUpdated)
		assert.NotContains(t, body, `id="editModal"`)
		assert.Contains(t, body, `title="https://new.example.com"`)
	})
}

func TestConsoleDeleteFlow(t *testing.T) {
	f := newConsoleFixture(t)
	_, err := f.store.Create(context.Background(), "https://example.com")
	require.NoError(t, err)

	t.Run("Confirmation dialog", func(t *testing.T) {
		resp := f.get("/urls/1/delete")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), services.DeletePrompt)
	})

	t.Run("Declined", func(t *testing.T) {
		resp := f.post("/urls/1/delete", url.Values{})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `title="https://example.com"`, "Record should survive a declined deletion")
	})

	t.Run("Confirmed", func(t *testing.T) {
		resp := f.post("/urls/1/delete", url.Values{"confirm": {"yes"}})

		require.Equal(t, http.StatusOK, resp.Code)
		body := resp.Body.String()
		assert.Contains(t, body, services.MsgDeleted)
		assert.Contains(t, body, "📝 No shortened URLs yet")
	})

	t.Run("Missing record", func(t *testing.T) {
		resp := f.post("/urls/1/delete", url.Values{"confirm": {"yes"}})

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), "Error deleting URL: URL not found")
	})

	t.Run("Invalid id", func(t *testing.T) {
		resp := f.post("/urls/zero/delete", url.Values{"confirm": {"yes"}})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestConsoleNoticesShownOnce(t *testing.T) {
	f := newConsoleFixture(t)

	resp := f.post("/urls", url.Values{"originalUrl": {"https://example.com/page"}})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), services.MsgShortened)

	f.board.Error("pushed before the next page")
	resp = f.get("/")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.NotContains(t, body, services.MsgShortened)
	assert.NotContains(t, body, "pushed before the next page")
	assert.Len(t, f.board.Active(), 2, "Rendering should leave the board to expire on its own")
}
