package widget

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kamusis/postsearch/internal/search"
	"github.com/kamusis/postsearch/internal/search/index"
)

// IndexLoader fetches an aggregate index. *index.Loader satisfies it.
type IndexLoader interface {
	Load(ctx context.Context, source string) (*index.LoadResult, error)
}

// Option customises Initialize.
type Option func(*options)

type options struct {
	loader IndexLoader
	logger *slog.Logger
}

// WithLoader replaces the default index loader.
func WithLoader(l IndexLoader) Option {
	return func(o *options) { o.loader = l }
}

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// QueryState is the outcome of one input: the query and its ordered matches.
type QueryState struct {
	Query   string
	Results []search.Document
	Fields  []search.Field // Fields[i] is the field that matched Results[i]
}

// Empty reports whether the state holds no results.
func (s QueryState) Empty() bool {
	return len(s.Results) == 0
}

// Widget binds a loaded index to a results container.
type Widget struct {
	cfg      Config
	mode     search.Mode
	source   string
	idx      *search.Index
	skipped  int
	loadErr  error
	renderer *renderer
	results  Container
	logger   *slog.Logger

	mu    sync.Mutex
	state QueryState
}

// Initialize validates cfg, fetches the index at indexURL once and returns a
// widget rendering into results. A failed fetch leaves the index empty and is
// reported through LoadError rather than as an error here.
func Initialize(ctx context.Context, indexURL string, results Container, cfg Config, opts ...Option) (*Widget, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	o := options{loader: index.DefaultLoader, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if results == nil {
		results = NewBuffer()
	}

	w := &Widget{
		cfg:      cfg,
		mode:     search.Exact,
		source:   indexURL,
		renderer: newRenderer(cfg),
		results:  results,
		logger:   o.logger,
	}
	if cfg.Fuzzy {
		w.mode = search.Fuzzy
	}

	var docs []search.Document
	res, err := o.loader.Load(ctx, indexURL)
	if err != nil {
		w.loadErr = err
		w.logger.Warn("search index unavailable; searches will return no results",
			"source", indexURL, "error", err)
	} else {
		docs = res.Documents
		w.skipped = res.Skipped
		if res.Skipped > 0 {
			w.logger.Warn("skipped malformed index entries", "source", indexURL, "count", res.Skipped)
		}
	}
	w.idx = search.NewIndex(docs, cfg.Exclude)
	w.logger.Debug("search index loaded", "source", indexURL, "documents", w.idx.Len())
	return w, nil
}

// Query computes the state for query without touching the container.
// It is safe for concurrent use.
func (w *Widget) Query(query string) QueryState {
	st := QueryState{Query: query}
	if query == "" {
		return st
	}
	matches := w.idx.Search(query, w.mode, w.cfg.Limit)
	st.Results = make([]search.Document, len(matches))
	st.Fields = make([]search.Field, len(matches))
	for i, m := range matches {
		st.Results[i] = m.Document
		st.Fields[i] = m.Field
	}
	return st
}

// Render returns the container content for st: empty for an empty query,
// NoResultsText when nothing matched, otherwise one template per result.
func (w *Widget) Render(st QueryState) string {
	if st.Query == "" {
		return ""
	}
	if st.Empty() {
		return w.cfg.NoResultsText
	}
	return w.renderer.renderAll(st.Results)
}

// OnInput handles one change of the input value, replacing the previous
// state and the container content.
func (w *Widget) OnInput(query string) QueryState {
	st := w.Query(query)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = st
	if query == "" {
		w.results.Clear()
		return st
	}
	w.results.Render(w.Render(st))
	return st
}

// Listen feeds every value received on input to OnInput until input is closed
// or ctx is done.
func (w *Widget) Listen(ctx context.Context, input <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case q, ok := <-input:
			if !ok {
				return nil
			}
			w.OnInput(q)
		}
	}
}

// State returns the state produced by the latest OnInput.
func (w *Widget) State() QueryState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Documents returns the searchable documents, exclusions already applied.
func (w *Widget) Documents() []search.Document {
	return w.idx.Documents()
}

// Len returns the number of searchable documents.
func (w *Widget) Len() int {
	return w.idx.Len()
}

// LoadError returns the index fetch failure, if any.
func (w *Widget) LoadError() error {
	return w.loadErr
}

// Skipped returns how many malformed index entries were dropped.
func (w *Widget) Skipped() int {
	return w.skipped
}

// Source returns the index location the widget was initialized with.
func (w *Widget) Source() string {
	return w.source
}

// Config returns the effective configuration.
func (w *Widget) Config() Config {
	return w.cfg
}
