// Package server exposes articles, roadmaps and the auth flow over HTTP for
// local preview. It serves a single session, like the browser it replaces.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ezerfernandes/codetabs/internal/auth"
	"github.com/ezerfernandes/codetabs/internal/content"
	"github.com/ezerfernandes/codetabs/internal/metrics"
	"github.com/ezerfernandes/codetabs/internal/render"
	"github.com/ezerfernandes/codetabs/internal/roadmap"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server wires the services to HTTP routes.
type Server struct {
	auth     auth.Service
	content  *content.Service
	roadmaps *roadmap.Catalog
	html     *render.HTML
	logger   *zap.Logger
}

func New(
	authSvc auth.Service, contentSvc *content.Service, roadmaps *roadmap.Catalog,
	html *render.HTML, logger *zap.Logger,
) *Server {
	return &Server{auth: authSvc, content: contentSvc, roadmaps: roadmaps, html: html, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/blogs/{id}", s.blogPage)
	r.Get("/static/code.css", s.codeCSS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", s.listBlogs)
			r.Post("/", s.publishBlog)
			r.Get("/{id}", s.getBlog)
			r.Put("/{id}", s.updateBlog)
			r.Delete("/{id}", s.deleteBlog)
			r.Post("/{id}/like", s.likeBlog)
		})
		r.Get("/me/blogs", s.myBlogs)
		r.Get("/topics", s.listTopics)
		r.Get("/categories", s.listCategories)

		r.Get("/roadmaps", s.listRoadmaps)
		r.Get("/roadmaps/{id}", s.getRoadmap)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/me", s.me)
			r.Post("/signup", s.signUp)
			r.Post("/signin", s.signIn)
			r.Post("/signin/{provider}", s.signInWithProvider)
			r.Post("/signout", s.signOut)
			r.Put("/profile", s.updateProfile)
			r.Put("/profile/picture", s.updateProfilePicture)
		})

		r.Post("/preprocess", s.preprocess)
		r.Post("/render", s.render)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Unhandled route", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		writeError(w, http.StatusNotFound, "not found")
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, //nolint:gomnd
	}

	errc := make(chan error, 1)

	go func() {
		s.logger.Info("Listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())

		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}
