package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ttab/elephant-stem/stemmer"
	"github.com/ttab/elephantine"
)

const (
	DefaultMaxBatch     = 10000
	DefaultMaxBodyBytes = 4 << 20
)

type Parameters struct {
	Addr        string
	ProfileAddr string
	Logger      *slog.Logger
	Registerer  prometheus.Registerer
	Gatherer    prometheus.Gatherer
	// CacheSize is the number of stems cached for all languages, zero
	// disables the cache.
	CacheSize    int
	MaxBatch     int
	MaxBodyBytes int64
	Concurrency  int
}

func NewApplication(
	ctx context.Context, p Parameters,
) (_ *Application, outErr error) {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}

	if p.Registerer == nil {
		p.Registerer = prometheus.DefaultRegisterer
	}

	if p.Gatherer == nil {
		p.Gatherer = prometheus.DefaultGatherer
	}

	if p.MaxBatch <= 0 {
		p.MaxBatch = DefaultMaxBatch
	}

	if p.MaxBodyBytes <= 0 {
		p.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if p.Concurrency <= 0 {
		p.Concurrency = runtime.GOMAXPROCS(0)
	}

	err := stemmer.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate rulesets: %w", err)
	}

	cacheMetrics, err := stemmer.NewMetrics(p.Registerer)
	if err != nil {
		return nil, fmt.Errorf("create cache metrics: %w", err)
	}

	metrics, err := newServiceMetrics(p.Registerer)
	if err != nil {
		return nil, fmt.Errorf("create service metrics: %w", err)
	}

	stemmers := stemmer.New(
		stemmer.WithCacheSize(p.CacheSize),
		stemmer.WithMetrics(cacheMetrics),
	)

	defer func() {
		if outErr != nil {
			_ = stemmers.Close()
		}
	}()

	texts, err := NewTextStemmer(stemmers, int32(p.Concurrency))
	if err != nil {
		return nil, err
	}

	p.Logger.DebugContext(ctx, "stemming rulesets loaded",
		"languages", len(stemmer.Languages()),
		"cache_size", p.CacheSize)

	app := Application{
		p:        p,
		logger:   p.Logger,
		server:   elephantine.NewAPIServer(p.Logger, p.Addr, p.ProfileAddr),
		stemmers: stemmers,
		texts:    texts,
		metrics:  metrics,
	}

	app.server.Mux.Handle("/", app.router())

	return &app, nil
}

type Application struct {
	p        Parameters
	logger   *slog.Logger
	server   *elephantine.APIServer
	stemmers *stemmer.Facade
	texts    *TextStemmer
	metrics  *serviceMetrics
}

func (a *Application) Run(ctx context.Context) error {
	defer a.Close()

	grace := elephantine.NewGracefulShutdown(a.logger, 10*time.Second)

	grp := elephantine.NewErrGroup(ctx, a.logger)

	grp.Go("server", func(ctx context.Context) error {
		return a.server.ListenAndServe(grace.CancelOnQuit(ctx))
	})

	return grp.Wait()
}

// Close releases the buffers and caches of the application.
func (a *Application) Close() {
	a.texts.Close()

	err := a.stemmers.Close()
	if err != nil {
		a.logger.Error("failed to close stemmers",
			elephantine.LogKeyError, err)
	}
}

// Handler returns the HTTP API of the application, including the liveness
// endpoint of the API server.
func (a *Application) Handler() http.Handler {
	return a.server.Mux
}

func (a *Application) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(a.recoverer)
	r.Use(a.instrument)

	r.Handle("/metrics", promhttp.HandlerFor(a.p.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/languages", a.listLanguages)
	r.Post("/stem", a.stemWords)
	r.Post("/stem/text", a.stemText)

	return r
}

type LanguagesResponse struct {
	Languages []stemmer.LanguageInfo `json:"languages"`
}

func (a *Application) listLanguages(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(r.Context(), w, http.StatusOK, LanguagesResponse{
		Languages: stemmer.Languages(),
	})
}

type StemRequest struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
}

type StemResponse struct {
	Language string   `json:"language"`
	Stems    []string `json:"stems"`
}

func (a *Application) stemWords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req StemRequest

	err := a.readJSON(w, r, &req)
	if err != nil {
		a.writeError(ctx, w, err)

		return
	}

	if len(req.Words) > a.p.MaxBatch {
		a.writeError(ctx, w, fmt.Errorf(
			"%w: %d words, the limit is %d",
			ErrBatchTooLarge, len(req.Words), a.p.MaxBatch))

		return
	}

	s, err := a.stemmers.Open(req.Language)
	if err != nil {
		a.writeError(ctx, w, err)

		return
	}

	stems, err := StemBatch(ctx, s, req.Words, a.p.Concurrency)
	if err != nil {
		a.writeError(ctx, w, err)

		return
	}

	a.metrics.words.WithLabelValues(s.Language()).Add(float64(len(stems)))

	a.writeJSON(ctx, w, http.StatusOK, StemResponse{
		Language: s.Language(),
		Stems:    stems,
	})
}

type StemTextRequest struct {
	Language      string `json:"language"`
	Text          string `json:"text"`
	DropStopWords bool   `json:"drop_stop_words,omitempty"`
}

type StemTextResponse struct {
	Text    string `json:"text"`
	Words   int    `json:"words"`
	Dropped int    `json:"dropped,omitempty"`
}

func (a *Application) stemText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req StemTextRequest

	err := a.readJSON(w, r, &req)
	if err != nil {
		a.writeError(ctx, w, err)

		return
	}

	res, err := a.texts.Stem(ctx, req.Language, req.Text, req.DropStopWords)
	if err != nil {
		a.writeError(ctx, w, err)

		return
	}

	a.metrics.texts.WithLabelValues(res.Language).Inc()

	a.writeJSON(ctx, w, http.StatusOK, StemTextResponse{
		Text:    res.Text,
		Words:   res.Words,
		Dropped: res.Dropped,
	})
}

type errBadRequest struct {
	err error
}

func (e errBadRequest) Error() string {
	return e.err.Error()
}

func (e errBadRequest) Unwrap() error {
	return e.err
}

func (a *Application) readJSON(
	w http.ResponseWriter, r *http.Request, v any,
) error {
	body := http.MaxBytesReader(w, r.Body, a.p.MaxBodyBytes)

	dec := json.NewDecoder(body)

	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err != nil {
		return errBadRequest{err: fmt.Errorf("invalid request body: %w", err)}
	}

	return nil
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"msg"`
}

func (a *Application) writeError(
	ctx context.Context, w http.ResponseWriter, err error,
) {
	var bad errBadRequest

	res := ErrorResponse{
		Code:    "internal",
		Message: err.Error(),
	}

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, stemmer.ErrUnknownLanguage):
		status = http.StatusBadRequest
		res.Code = "unknown_language"
	case errors.Is(err, ErrBatchTooLarge):
		status = http.StatusBadRequest
		res.Code = "batch_too_large"
	case errors.As(err, &bad):
		status = http.StatusBadRequest
		res.Code = "bad_request"
	case errors.Is(err, context.Canceled):
		// The client has gone away, nobody will read the response.
		return
	default:
		a.logger.ErrorContext(ctx, "request failed",
			elephantine.LogKeyError, err)
	}

	a.writeJSON(ctx, w, status, res)
}

func (a *Application) writeJSON(
	ctx context.Context, w http.ResponseWriter, status int, v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to write response",
			elephantine.LogKeyError, err)
	}
}

func (a *Application) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			if p == http.ErrAbortHandler { //nolint: errorlint
				panic(p)
			}

			err := fmt.Errorf("panic in handler: %v", p)

			a.logger.ErrorContext(r.Context(), "request failed",
				elephantine.LogKeyError, err,
				"path", r.URL.Path,
				"stack", string(debug.Stack()))

			a.writeJSON(r.Context(), w, http.StatusInternalServerError,
				ErrorResponse{
					Code:    "internal",
					Message: err.Error(),
				})
		}()

		next.ServeHTTP(w, r)
	})
}

func (a *Application) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		a.metrics.requests.WithLabelValues(
			route, strconv.Itoa(ww.Status()),
		).Inc()

		a.metrics.duration.WithLabelValues(route).Observe(
			time.Since(start).Seconds())
	})
}
