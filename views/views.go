// Package views renders the operator console. All record fields are interpolated
// through html/template, so markup in a stored URL is always escaped.
package views

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"go-url-admin/types"
)

//go:embed templates/*.tmpl
var files embed.FS

// TimeLayout renders creation times the way an en-US locale does.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// PageTemplate is the name of the full console page.
const PageTemplate = "page"

// Page is the data of one console render.
type Page struct {
	Notices       []types.Notice
	Input         string
	Table         types.Table
	Edit          *types.EditSession
	ConfirmDelete *DeleteDialog
	Busy          map[string]bool
	LinkBase      string
}

// DeleteDialog asks the operator to confirm a deletion.
type DeleteDialog struct {
	ID     int64
	Prompt string
}

// Options configure a Renderer.
type Options struct {
	// Location is the zone creation times are shown in. Nil means time.Local.
	Location  *time.Location
	NoticeTTL time.Duration
}

// New parses the console templates.
func New(opts Options) (*template.Template, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	ttl := opts.NoticeTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	funcs := template.FuncMap{
		"shortLink":  ShortLink,
		"localTime":  func(t time.Time) string { return FormatTime(t, loc) },
		"ttlSeconds": func() float64 { return ttl.Seconds() },
	}
	return template.New("console").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
}

// Must is like New but panics on error.
func Must(opts Options) *template.Template {
	return template.Must(New(opts))
}

// Render writes the full console page for p.
func Render(w io.Writer, tmpl *template.Template, p Page) error {
	return tmpl.ExecuteTemplate(w, PageTemplate, p)
}

// ShortLink joins the short-link base and a short code.
func ShortLink(base, code string) string {
	return strings.TrimRight(base, "/") + "/" + code
}

// FormatTime renders t in loc using TimeLayout.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeLayout)
}
