package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-url-admin/services"
	"go-url-admin/types"
	"go-url-admin/views"
)

// render writes the console page. The table is loaded from the backend unless
// the operation already reloaded it. Only notices pushed after mark are shown.
func (h *URLHandler) render(ctx context.Context, c *gin.Context, mark uint64, status int, page views.Page, table *types.Table) {
	if table == nil {
		loaded, err := h.service.LoadURLs(ctx)
		if errors.Is(err, services.ErrSuperseded) {
			c.Status(http.StatusNoContent)
			return
		}
		table = &loaded
	}

	page.Table = *table
	page.Notices = h.board.Since(mark)
	page.Busy = h.service.Busy()
	page.LinkBase = h.config.LinkBase()
	c.HTML(status, views.PageTemplate, page)
}

// renderOutcome renders the page after a mutating operation. Superseded
// operations have no visible effect.
func (h *URLHandler) renderOutcome(ctx context.Context, c *gin.Context, mark uint64, out types.Outcome, err error, page views.Page) {
	if errors.Is(err, services.ErrSuperseded) {
		c.Status(http.StatusNoContent)
		return
	}
	status := http.StatusOK
	if err != nil {
		status, _ = h.statusFor(err, "")
	}
	page.Input = out.Input
	h.render(ctx, c, mark, status, page, out.Table)
}

// Index serves the console page.
func (h *URLHandler) Index(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	h.render(ctx, c, mark, http.StatusOK, views.Page{}, nil)
}

// Shorten handles the input form.
func (h *URLHandler) Shorten(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	out, err := h.service.ShortenURL(ctx, c.PostForm("originalUrl"))
	h.renderOutcome(ctx, c, mark, out, err, views.Page{})
}

// OpenEdit opens the edit dialog for the record described by the query string.
func (h *URLHandler) OpenEdit(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, invalidID)
		return
	}

	session := &types.EditSession{}
	session.Open(id, c.Query("originalUrl"), c.Query("shortUrl"))
	h.render(ctx, c, mark, http.StatusOK, views.Page{Edit: session}, nil)
}

// Update submits the edit dialog. The dialog stays open when the update fails.
func (h *URLHandler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, invalidID)
		return
	}

	input := c.PostForm("originalUrl")
	session := &types.EditSession{}
	session.Open(id, input, c.PostForm("shortUrl"))

	out, err := h.service.UpdateURL(ctx, session, input)
	page := views.Page{}
	if session.IsOpen() {
		page.Edit = session
	}
	h.renderOutcome(ctx, c, mark, out, err, page)
}

// CloseEdit closes the edit dialog without saving.
func (h *URLHandler) CloseEdit(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	h.render(ctx, c, mark, http.StatusOK, views.Page{}, nil)
}

// ConfirmDelete shows the deletion confirmation dialog.
func (h *URLHandler) ConfirmDelete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, invalidID)
		return
	}
	dialog := &views.DeleteDialog{ID: id, Prompt: services.DeletePrompt}
	h.render(ctx, c, mark, http.StatusOK, views.Page{ConfirmDelete: dialog}, nil)
}

// Delete performs a deletion confirmed through the dialog form.
func (h *URLHandler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()
	mark := h.board.Mark()

	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, invalidID)
		return
	}

	out, err := h.service.DeleteURL(ctx, id, services.Confirmed(c.PostForm("confirm") == "yes"))
	if errors.Is(err, services.ErrNotConfirmed) {
		h.logger.Debug("Deletion cancelled", zap.Int64("id", id))
		h.render(ctx, c, mark, http.StatusOK, views.Page{}, nil)
		return
	}
	h.renderOutcome(ctx, c, mark, out, err, views.Page{})
}
