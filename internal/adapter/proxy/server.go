// Package proxy serves the /api/bitbucket routes the client talks to and
// forwards them to the BitBucket Cloud REST API.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/bbrepo/internal/adapter/bitbucket"
	"github.com/yourusername/bbrepo/internal/domain"
	"pkt.systems/pslog"
)

// Prefix is the route prefix every endpoint lives under.
const Prefix = "/api/bitbucket"

// Config holds proxy configuration.
type Config struct {
	Addr        string
	UpstreamURL string
	HTTPClient  *http.Client
}

// Server proxies BitBucket requests, translating the token header into a
// bearer Authorization header.
type Server struct {
	addr     string
	upstream string
	client   *http.Client
}

// NewServer creates a proxy server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("proxy: upstream URL is required")
	}
	if _, err := url.Parse(cfg.UpstreamURL); err != nil {
		return nil, fmt.Errorf("proxy: invalid upstream URL: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Server{
		addr:     cfg.Addr,
		upstream: strings.TrimSuffix(cfg.UpstreamURL, "/"),
		client:   client,
	}, nil
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+Prefix+bitbucket.PathRepositories, s.withToken(s.handleRepositories))
	mux.HandleFunc("GET "+Prefix+bitbucket.PathUser, s.withToken(s.handleUser))
	mux.HandleFunc("GET "+Prefix+bitbucket.PathWorkspaces, s.withToken(s.handleWorkspaces))
	mux.HandleFunc("GET "+Prefix+bitbucket.PathSearchRepositories, s.withToken(s.handleSearch))
	return withRequestLogging(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	baseCtx := context.WithoutCancel(ctx)
	httpServer := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		pslog.Ctx(ctx).Info("bitbucket proxy listening", "addr", s.addr, "upstream", s.upstream)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("proxy shutdown: %w", err)
		}
		return nil
	}
}

type tokenHandler func(w http.ResponseWriter, r *http.Request, token string)

func (s *Server) withToken(next tokenHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(bitbucket.TokenHeader)
		if token == "" {
			writeDetail(w, http.StatusBadRequest, "Missing "+bitbucket.TokenHeader+" header")
			return
		}
		next(w, r, token)
	}
}

func (s *Server) handleRepositories(w http.ResponseWriter, r *http.Request, token string) {
	q := r.URL.Query()
	page, err := intParam(q, "page", bitbucket.DefaultPage)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	perPage, err := intParam(q, "per_page", bitbucket.DefaultPerPage)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pagelen", strconv.Itoa(perPage))
	params.Set("sort", stringParam(q, "sort", bitbucket.DefaultSort))

	path := "/user/repositories"
	if ws := q.Get("workspace"); ws != "" {
		path = "/repositories/" + url.PathEscape(ws)
	}

	body, status, err := s.fetch(r.Context(), path, params, token)
	if err != nil {
		writeDetail(w, status, "Error fetching repositories: "+err.Error())
		return
	}
	writeRaw(w, body)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request, token string) {
	body, status, err := s.fetch(r.Context(), "/user", nil, token)
	if err != nil {
		writeDetail(w, status, "Error fetching user: "+err.Error())
		return
	}
	writeRaw(w, body)
}

func (s *Server) handleWorkspaces(w http.ResponseWriter, r *http.Request, token string) {
	body, status, err := s.fetch(r.Context(), "/workspaces", nil, token)
	if err != nil {
		writeDetail(w, status, "Error fetching workspaces: "+err.Error())
		return
	}

	var page domain.Page[domain.Workspace]
	if err := json.Unmarshal(body, &page); err != nil {
		writeDetail(w, http.StatusBadGateway, "Error fetching workspaces: "+err.Error())
		return
	}
	slugs := make([]string, 0, len(page.Values))
	for _, ws := range page.Values {
		slugs = append(slugs, ws.Slug)
	}
	writeJSON(w, http.StatusOK, slugs)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, token string) {
	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "query parameter is required")
		return
	}
	perPage, err := intParam(q, "per_page", bitbucket.DefaultSearchPerPage)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	params := url.Values{}
	params.Set("q", NameFilter(query))
	params.Set("pagelen", strconv.Itoa(perPage))
	params.Set("sort", stringParam(q, "sort", bitbucket.DefaultSort))

	body, status, err := s.fetch(r.Context(), "/repositories", params, token)
	if err != nil {
		writeDetail(w, status, "Error searching repositories: "+err.Error())
		return
	}
	writeRaw(w, body)
}

// NameFilter builds the BitBucket query-language filter for a name search.
func NameFilter(query string) string {
	escaped := strings.ReplaceAll(query, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `name~"` + escaped + `"`
}

// fetch performs the upstream GET. On failure it returns the status the
// proxy should answer with.
func (s *Server) fetch(ctx context.Context, path string, params url.Values, token string) ([]byte, int, error) {
	target := s.upstream + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	for k, v := range UpstreamHeaders(token) {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		pslog.Ctx(ctx).Warn("bitbucket upstream unreachable", "path", path, "err", err)
		return nil, http.StatusInternalServerError, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		pslog.Ctx(ctx).Debug("bitbucket upstream error", "path", path, "status", resp.StatusCode)
		return nil, resp.StatusCode, fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), s.upstream+path)
	}
	return body, resp.StatusCode, nil
}

// UpstreamHeaders returns the headers sent to BitBucket for token.
func UpstreamHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        "application/json",
	}
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func stringParam(q url.Values, key, def string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return def
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
