package proposal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/resolve"
)

// Engine loads templates and renders them with a placeholder resolver built
// from its configuration. Use New or NewWithConfig to create one.
type Engine struct {
	config   *Config
	cache    *TemplateCache
	resolver *resolve.Resolver
	logger   *Logger
}

// New creates an engine from the global configuration.
func New() *Engine {
	return NewWithConfig(GetGlobalConfig())
}

// NewWithConfig creates an engine with its own cache and resolver. An
// unknown style policy falls back to "first".
func NewWithConfig(config *Config) *Engine {
	e := &Engine{
		config: config,
		cache: NewTemplateCacheWithConfig(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
		logger: GetLogger(),
	}
	e.resolver = e.newResolver()
	return e
}

func (e *Engine) newResolver() *resolve.Resolver {
	policy, err := resolve.PolicyByName(e.config.StylePolicy)
	if err != nil {
		e.logger.Warn("%v, using %q", err, resolve.FirstRun.Name())
		policy = resolve.FirstRun
	}
	opts := []resolve.Option{resolve.WithStylePolicy(policy)}
	if !e.config.AnnotationRule {
		opts = append(opts, resolve.WithoutRules())
	}
	return resolve.New(opts...)
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithResolver replaces the resolver built from the configuration.
func WithResolver(r *resolve.Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// NewWithOptions creates an engine from config and applies opts.
func NewWithOptions(config *Config, opts ...Option) *Engine {
	engine := NewWithConfig(config)
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// PrepareFile loads a template from a file path. Cached templates are
// reused until the file changes on disk.
func (e *Engine) PrepareFile(path string) (*Template, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &TemplateError{Template: path, Message: fmt.Sprintf("cannot open template: %v", err)}
	}

	if tmpl, ok := e.cache.Get(path); ok {
		if tmpl.modTime.Equal(info.ModTime()) {
			e.logger.Debug("template cache hit: %s", path)
			return tmpl, nil
		}
		e.cache.Remove(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	tmpl, err := prepare(file, path, e.config.IncludeHeadersFooters, e.resolver)
	if err != nil {
		return nil, err
	}
	tmpl.modTime = info.ModTime()
	e.logger.WithField("parts", len(tmpl.parts)).Debug("loaded template %s in %s", path, time.Since(start))

	e.cache.Set(path, tmpl)
	return tmpl, nil
}

// Prepare loads a template from an io.Reader. It is not cached.
func (e *Engine) Prepare(r io.Reader) (*Template, error) {
	return prepare(r, "", e.config.IncludeHeadersFooters, e.resolver)
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Resolver returns the engine's placeholder resolver.
func (e *Engine) Resolver() *resolve.Resolver {
	return e.resolver
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger {
	return e.logger
}

// ClearCache removes all templates from the cache.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// DefaultEngine is the engine used by the package-level functions.
var DefaultEngine = New()

// PrepareFile loads a template from a file path using the default engine.
func PrepareFile(path string) (*Template, error) {
	return DefaultEngine.PrepareFile(path)
}

// Prepare loads a template from an io.Reader using the default engine.
func Prepare(r io.Reader) (*Template, error) {
	return DefaultEngine.Prepare(r)
}
