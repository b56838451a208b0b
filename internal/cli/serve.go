package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdraw/pkg/buildinfo"
	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

const (
	maxBodyBytes    = 4 << 20
	shutdownTimeout = 10 * time.Second
	// serveMaxTicks bounds the work a single request can ask for.
	serveMaxTicks = 10 * defaultTicks
)

var contentTypes = map[string]string{
	formatPNG:      "image/png",
	formatSVG:      "image/svg+xml",
	formatDOT:      "text/vnd.graphviz",
	formatGraphviz: "image/svg+xml",
	formatJSON:     "application/json",
}

type serveOpts struct {
	addr          string
	noCache       bool
	redisAddr     string
	redisPassword string
	redisDB       int
	prefix        string
}

// server renders documents posted over HTTP.
type server struct {
	renderer *renderer
	base     settings.Settings
	logger   *log.Logger
}

func newServer(r *renderer, base settings.Settings, logger *log.Logger) *server {
	return &server{renderer: r, base: base, logger: logger}
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/render/{format}", s.handleRender)
		r.Post("/analyze", s.handleAnalyze)
	})
	return r
}

// requestID tags each request with a UUID, attaches a request logger to the
// context and reports the request to the HTTP hooks.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := withLogger(r.Context(), s.logger.With("request", id))
		ctx = context.WithValue(ctx, requestIDKey, id)
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, id, r.Method, r.URL.Path, status, time.Since(start))
		loggerFromContext(ctx).Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "bytes", ww.BytesWritten())
	})
}

const requestIDKey ctxKey = 1

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.Server())
		next.ServeHTTP(w, r)
	})
}

// handleHealth answers 503 while the cache backend is unreachable so a load
// balancer can take the instance out of rotation.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.renderer.cache.Ping(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleRender renders the posted document. Query parameters width, height,
// ticks, seed and scale override the defaults.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := validateFormats([]string{format}); err != nil {
		s.fail(w, r, err)
		return
	}

	j, err := s.readJob(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := applyQuery(j, r); err != nil {
		s.fail(w, r, err)
		return
	}

	artifacts, err := s.renderer.render(r.Context(), j, []string{format}, nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a := artifacts[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", map[bool]string{true: "hit", false: "miss"}[a.Cached])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	j, err := s.readJob(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if v := r.URL.Query().Get("directed"); v != "" {
		directed, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "directed: %v", err))
			return
		}
		j.settings.Directed = directed
	}

	ctx := r.Context()
	key := s.renderer.keyer.AnalysisKey(j.hash, cache.AnalysisKeyOpts{Directed: j.settings.Directed, Format: formatJSON})
	if data, hit, err := s.renderer.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, string(cache.KindAnalysis))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, string(cache.KindAnalysis))

	e := j.engine(loggerFromContext(ctx))
	rep := analyze(e.VisibleSnapshot(), j.settings.Directed, j.width/j.height)
	rep.TestCases = len(j.doc.TestCases)
	data, err := json.Marshal(rep)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data = append(data, '\n')
	if err := s.renderer.cache.Set(ctx, key, data, cache.KindAnalysis.TTL()); err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(data)
}

func (s *server) readJob(w http.ResponseWriter, r *http.Request) (*job, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return newJob(data, s.base)
}

// applyQuery copies numeric query parameters onto j and validates it.
func applyQuery(j *job, r *http.Request) error {
	q := r.URL.Query()
	floats := map[string]*float64{"width": &j.width, "height": &j.height, "scale": &j.scale}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "%s: %v", name, err)
			}
			*dst = f
		}
	}
	if v := q.Get("ticks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "ticks: %v", err)
		}
		j.ticks = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "seed: %v", err)
		}
		j.seed = n
	}
	if modes := q["mode"]; len(modes) > 0 {
		if err := applyModes(&j.settings, modes); err != nil {
			return err
		}
	}
	if j.ticks > serveMaxTicks {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must not exceed %d, got %d", serveMaxTicks, j.ticks)
	}
	return j.validate()
}

// fail writes err as a JSON error body with the status its code maps to.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	observability.HTTP().OnError(ctx, requestIDFrom(ctx), r.Method, r.URL.Path, err)

	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(ctx).Error("request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"error":   errors.UserMessage(err),
		"code":    string(code),
		"request": requestIDFrom(ctx),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", prefix: appName + ":"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders and analyses over HTTP",
		Long: `Serve exposes the headless renderer:

  POST /v1/render/{png,svg,dot,graphviz,json}   body: exported document
  POST /v1/analyze                              body: exported document
  GET  /healthz

Renders are cached in the local cache directory, or in Redis with --redis so
several instances share results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database")
	cmd.Flags().StringVar(&opts.prefix, "cache-prefix", opts.prefix, "cache key prefix")
	return cmd
}

// openServeCache picks the shared Redis cache, the local file cache or none.
func openServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return newCache(false)
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	base, err := c.loadSettings()
	if err != nil {
		return err
	}

	ca, err := openServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer ca.Close()

	s := newServer(newRenderer(ca, cache.NewScopedKeyer(nil, opts.prefix), c.Logger), base, c.Logger)
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Listening on %s", opts.addr)
	if opts.redisAddr != "" {
		printDetail("Cache: redis %s", opts.redisAddr)
	}

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	c.Logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
