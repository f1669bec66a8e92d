// Package server exposes a search widget over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kamusis/postsearch/internal/search"
	"github.com/kamusis/postsearch/internal/widget"
)

// Server serves the loaded index and query results.
type Server struct {
	echo   *echo.Echo
	widget *widget.Widget
	logger *slog.Logger
}

// SearchHit is one result in the JSON API.
type SearchHit struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Field       string   `json:"field"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string      `json:"query"`
	Count   int         `json:"count"`
	Results []SearchHit `json:"results"`
}

// New wires routes for w.
func New(w *widget.Widget, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				logger.DebugContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.ErrorContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	s := &Server{echo: e, widget: w, logger: logger}
	e.GET("/search.json", s.handleIndex)
	e.GET("/search", s.handleFragment)
	e.GET("/api/search", s.handleSearch)
	e.GET("/health", s.handleHealth)
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on addr until ctx is done, then shuts down within 10 seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting search server", "address", addr, "documents", s.widget.Len())
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server exited properly")
	return nil
}

func (s *Server) handleIndex(c echo.Context) error {
	docs := s.widget.Documents()
	if docs == nil {
		docs = []search.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

// handleFragment returns the rendered results. Only the html format escapes
// its fields, so anything else is served as plain text.
func (s *Server) handleFragment(c echo.Context) error {
	st := s.widget.Query(c.QueryParam("q"))
	body := s.widget.Render(st)
	if s.widget.Config().Format != widget.FormatHTML {
		return c.String(http.StatusOK, body)
	}
	return c.HTML(http.StatusOK, body)
}

func (s *Server) handleSearch(c echo.Context) error {
	st := s.widget.Query(c.QueryParam("q"))
	resp := SearchResponse{
		Query:   st.Query,
		Count:   len(st.Results),
		Results: make([]SearchHit, 0, len(st.Results)),
	}
	for i, d := range st.Results {
		resp.Results = append(resp.Results, SearchHit{
			Title:       d.Title,
			URL:         d.URL,
			Description: d.Description,
			Tags:        d.Tags,
			Field:       st.Fields[i].String(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c echo.Context) error {
	status := "ok"
	if s.widget.LoadError() != nil {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":    status,
		"documents": s.widget.Len(),
	})
}
