package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/KudcraftsHQ/slidekit/pkg/buildinfo"
	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/observability"
	"github.com/KudcraftsHQ/slidekit/pkg/pipeline"
	"github.com/KudcraftsHQ/slidekit/pkg/slide"
)

// serveCommand creates the serve command running the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run the HTTP preview server.

Endpoints:
  POST /render     slide document JSON in the body; format, width, height,
                   jpeg_quality, apply_viewport, and refresh as query
                   parameters; responds with the encoded image
  POST /thumbnail  slide document JSON in the body; responds with a JSON
                   object carrying a PNG data URL
  GET  /healthz    liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(runner, c),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			printInfo("Listening on %s", addr)
			c.Logger.Info("preview server starting", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "listen address")

	return cmd
}

// newRouter builds the preview server's route tree.
func newRouter(runner *pipeline.Runner, c *CLI) http.Handler {
	s := &server{
		runner:     runner,
		thumbnails: pipeline.NewThumbnailer(runner, 0),
		cli:        c,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/render", s.handleRender)
	r.Post("/thumbnail", s.handleThumbnail)

	return r
}

// server holds the preview server's handlers and shared state.
type server struct {
	runner     *pipeline.Runner
	thumbnails *pipeline.Thumbnailer
	cli        *CLI
}

// logRequests logs every request through the CLI logger and fires the
// HTTP observability hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := withLogger(r.Context(), s.cli.Logger)
		observability.HTTP().OnRequest(ctx, "preview", r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(ctx, "preview", r.Method, r.URL.Path, ww.Status(), elapsed)
		s.cli.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond))
	})
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRender renders the slide document in the request body. Output
// options arrive as query parameters so the body stays a plain document.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	sl, err := slide.DecodeSlide(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Render(r.Context(), sl, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, warning := range res.Warnings {
		loggerFromContext(r.Context()).Warn("render warning", "hash", res.SlideHash[:12], "warning", warning)
	}

	w.Header().Set("Content-Type", contentTypeFor(res.Format))
	w.Header().Set("X-Slide-Hash", res.SlideHash)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Render-Cache", "hit")
	} else {
		w.Header().Set("X-Render-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// handleThumbnail renders the slide in the body as a memoized PNG data URL.
func (s *server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	sl, err := slide.DecodeSlide(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := s.thumbnails.DataURL(r.Context(), sl)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"data_url": url})
}

// optionsFromQuery maps render query parameters onto pipeline options.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Format: q.Get("format")}

	var err error
	if opts.Width, err = intParam(q.Get("width")); err != nil {
		return opts, errors.New(errors.ErrCodeInvalidInput, "invalid width %q", q.Get("width"))
	}
	if opts.Height, err = intParam(q.Get("height")); err != nil {
		return opts, errors.New(errors.ErrCodeInvalidInput, "invalid height %q", q.Get("height"))
	}
	if v := q.Get("jpeg_quality"); v != "" {
		if opts.JPEGQuality, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid jpeg_quality %q", v)
		}
	}
	opts.ApplyViewport = q.Get("apply_viewport") == "true"
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// contentTypeFor maps an output format to its MIME type.
func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatJPEG:
		return "image/jpeg"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// writeError maps a structured error code to an HTTP status and writes a
// JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSlide,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidColor:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
