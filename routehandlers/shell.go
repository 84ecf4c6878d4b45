package routehandlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/vitalvas/navroute/navigator"
	"github.com/vitalvas/navroute/router"
)

var (
	// ErrShellNoTable is returned when ShellConfig.Table is nil.
	ErrShellNoTable = errors.New("routehandlers: route table must not be nil")

	// ErrShellNoAssets is returned when ShellConfig.Assets is nil.
	ErrShellNoAssets = errors.New("routehandlers: assets file system must not be nil")
)

// ShellData is passed to the shell template.
type ShellData struct {
	Title  string
	View   string
	Path   string
	Status int
	// Match is nil when the path did not resolve.
	Match *router.MatchInfo
}

// ShellConfig configures ShellHandler.
type ShellConfig struct {
	// Table resolves request paths. Required.
	Table *router.Table

	// Assets holds the shell template and the static files of the
	// application. Required.
	Assets fs.FS

	// Template names the shell template inside Assets. Defaults to
	// "index.html".
	Template string

	// NotFoundView is rendered with status 404. Defaults to "NotFound".
	NotFoundView string

	// Title maps a view to the document title. Defaults to the view name.
	Title func(view string) string

	// RedirectCode is the status used for redirect routes. Defaults to
	// 302 Found.
	RedirectCode int

	// Render writes the response for a resolved or unknown path. The
	// request context carries the match, see router.MatchFromContext.
	// Defaults to executing the shell template.
	Render func(w http.ResponseWriter, r *http.Request, data ShellData)

	Logger  *zap.Logger
	Metrics *Metrics
}

type shellHandler struct {
	cfg    ShellConfig
	tpl    *template.Template
	files  http.Handler
	logger *zap.Logger
}

// ShellHandler serves a history-mode single page application. Existing
// asset files are served as they are; every other path is resolved
// against the table and answered with the rendered shell, an HTTP
// redirect, or an error status.
func ShellHandler(cfg ShellConfig) (http.Handler, error) {
	if cfg.Table == nil {
		return nil, ErrShellNoTable
	}
	if cfg.Assets == nil {
		return nil, ErrShellNoAssets
	}

	if cfg.Template == "" {
		cfg.Template = "index.html"
	}
	if cfg.NotFoundView == "" {
		cfg.NotFoundView = "NotFound"
	}
	if cfg.Title == nil {
		cfg.Title = func(view string) string { return view }
	}
	if cfg.RedirectCode == 0 {
		cfg.RedirectCode = http.StatusFound
	}
	if cfg.RedirectCode < 300 || cfg.RedirectCode > 399 {
		return nil, fmt.Errorf("routehandlers: redirect code %d is not a redirection status", cfg.RedirectCode)
	}

	h := &shellHandler{
		cfg:    cfg,
		files:  http.FileServerFS(cfg.Assets),
		logger: cfg.Logger,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}

	if cfg.Render == nil {
		tpl, err := template.ParseFS(cfg.Assets, cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("routehandlers: shell template: %w", err)
		}
		h.tpl = tpl
		h.cfg.Render = h.render
	}

	return h, nil
}

func (h *shellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	p := r.URL.EscapedPath()
	if cp := cleanPath(p); cp != p {
		u := *r.URL
		u.RawPath = ""
		u.Path = cp
		if unescaped, err := url.PathUnescape(cp); err == nil {
			u.Path = unescaped
			u.RawPath = cp
		}
		http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
		return
	}

	if h.isAsset(r.URL.Path) {
		h.files.ServeHTTP(w, r)
		return
	}

	target := p
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	m, err := h.cfg.Table.Resolve(target)
	h.cfg.Metrics.resolved(navigator.ResultLabel(err))

	switch {
	case err == nil && m.Redirected():
		http.Redirect(w, r, m.FullPath(), h.cfg.RedirectCode)

	case err == nil:
		info := m.Info()
		r = r.WithContext(router.WithMatch(r.Context(), m))
		h.cfg.Render(w, r, ShellData{
			Title:  h.cfg.Title(m.View),
			View:   m.View,
			Path:   m.FullPath(),
			Status: http.StatusOK,
			Match:  &info,
		})

	case errors.Is(err, router.ErrNotFound):
		h.cfg.Render(w, r, ShellData{
			Title:  h.cfg.Title(h.cfg.NotFoundView),
			View:   h.cfg.NotFoundView,
			Path:   target,
			Status: http.StatusNotFound,
		})

	default:
		h.logger.Warn("shell resolve failed", zap.String("path", target), zap.Error(err))
		code := StatusCode(err)
		http.Error(w, http.StatusText(code), code)
	}
}

// isAsset reports whether name is a regular file in the assets. The shell
// template itself is never served raw, and directories are never listed.
func (h *shellHandler) isAsset(name string) bool {
	name = strings.TrimPrefix(name, "/")
	if name == "" || path.Base(name) == "index.html" || name == h.cfg.Template {
		return false
	}

	st, err := fs.Stat(h.cfg.Assets, name)
	return err == nil && !st.IsDir()
}

func (h *shellHandler) render(w http.ResponseWriter, r *http.Request, data ShellData) {
	var buf bytes.Buffer
	if err := h.tpl.Execute(&buf, data); err != nil {
		h.logger.Error("shell render failed",
			zap.String("view", data.View),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(data.Status)
	w.Write(buf.Bytes())
}

// StatusCode maps a resolution or build error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, router.ErrMalformedPath),
		errors.Is(err, router.ErrMissingParam),
		errors.Is(err, router.ErrInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, router.ErrNotFound), errors.Is(err, router.ErrUnknownRoute):
		return http.StatusNotFound
	case errors.Is(err, router.ErrRedirectCycle), errors.Is(err, router.ErrRedirectLimit):
		return http.StatusLoopDetected
	}
	return http.StatusInternalServerError
}
