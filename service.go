package filesniff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/sirupsen/logrus"

	"github.com/gobeaver/filesniff/signature"
)

// Global instance
var (
	defaultSniffer *Sniffer
	defaultOnce    sync.Once
	defaultErr     error
)

// Sniffer classifies content with a fixed rule table. It adds a result
// cache, logging and metrics on top of Classify, and reads paths through a
// storage driver. A Sniffer is safe for concurrent use.
type Sniffer struct {
	table   *signature.Table
	reader  FileReader
	cache   Cache
	metrics *Metrics
	logger  *logrus.Logger
}

// Option configures a Sniffer.
type Option func(*options)

type options struct {
	logger   *logrus.Logger
	cache    Cache
	cacheSet bool
	metrics  *Metrics
	table    *signature.Table
	reader   FileReader
}

// WithLogger sets the logger, replacing the one built from config.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCache sets the result cache. A nil cache disables caching.
func WithCache(cache Cache) Option {
	return func(o *options) {
		o.cache = cache
		o.cacheSet = true
	}
}

// WithMetrics sets the metrics instruments.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithTable sets the signature table, replacing the built-in one and any
// rule file named in config.
func WithTable(table *signature.Table) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithFileReader sets the backend used by SniffPath, replacing the
// configured driver.
func WithFileReader(reader FileReader) Option {
	return func(o *options) {
		o.reader = reader
	}
}

// Builder provides a way to create Sniffer instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Config loads the configuration using the builder's prefix
func (b *Builder) Config() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init initializes the global Sniffer instance using the builder's prefix
func (b *Builder) Init() error {
	cfg, err := b.Config()
	if err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Sniffer instance using the builder's prefix
func (b *Builder) New(opts ...Option) (*Sniffer, error) {
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Init initializes the global Sniffer instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultSniffer, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global instance, initializing it from the
// environment if needed
func Default() (*Sniffer, error) {
	if defaultSniffer == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultSniffer, nil
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultSniffer = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// New creates a Sniffer from cfg. A nil cfg means DefaultConfig.
func New(cfg *Config, opts ...Option) (*Sniffer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	s := &Sniffer{
		table:   o.table,
		reader:  o.reader,
		cache:   o.cache,
		metrics: o.metrics,
		logger:  o.logger,
	}

	if s.logger == nil {
		logger, err := NewLogger(nil, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		s.logger = logger
	}

	if s.table == nil {
		if cfg.RulesFile != "" {
			table, err := signature.LoadTableFile(cfg.RulesFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load rules: %w", err)
			}
			s.table = table
			s.logger.WithFields(logrus.Fields{
				"file":  cfg.RulesFile,
				"rules": table.Len(),
			}).Info("loaded signature rules")
		} else {
			s.table = signature.DefaultTable()
		}
	}

	if s.reader == nil {
		reader, err := CreateDriver(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create driver: %w", err)
		}
		s.reader = reader
	}

	if !o.cacheSet && cfg.CacheEnabled {
		s.cache = NewMemoryCache(
			WithCacheTTL(cfg.CacheTTLDuration()),
			WithCacheMaxEntries(cfg.CacheMaxEntries),
		)
	}

	if s.metrics == nil && cfg.MetricsEnabled {
		metrics, err := NewMetrics(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics: %w", err)
		}
		s.metrics = metrics
	}

	return s, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.CacheTTL < 0 {
		return errors.New("cache TTL must not be negative")
	}
	if cfg.CacheMaxEntries < 0 {
		return errors.New("cache max entries must not be negative")
	}
	if cfg.Driver == "local" && cfg.LocalBasePath == "" {
		return errors.New("local base path is required for local driver")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.LogFormat)
	}
	return nil
}

// Table returns the signature table in use.
func (s *Sniffer) Table() *signature.Table {
	return s.table
}

// Logger returns the logger in use.
func (s *Sniffer) Logger() *logrus.Logger {
	return s.logger
}

// Cache returns the result cache, or nil when caching is disabled.
func (s *Sniffer) Cache() Cache {
	return s.cache
}

// Sniff classifies header. Only the first HeaderSize bytes are used.
func (s *Sniffer) Sniff(ctx context.Context, header []byte) *Result {
	if len(header) > HeaderSize {
		header = header[:HeaderSize]
	}

	if s.cache != nil {
		if r, ok := s.cache.Get(header); ok {
			s.metrics.RecordCache(ctx, true)
			s.record(ctx, r, len(header), true)
			return r
		}
		s.metrics.RecordCache(ctx, false)
	}

	r := ClassifyWith(header, s.table)
	if s.cache != nil {
		s.cache.Set(header, r)
	}
	s.record(ctx, r, len(header), false)
	return r
}

// SniffReader classifies the content of r. When r can seek, its header is
// read from the start and the cursor is restored afterwards; otherwise up
// to HeaderSize bytes are consumed from the current position.
func (s *Sniffer) SniffReader(ctx context.Context, r io.Reader) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header, err := readSourceHeader(r)
	if err != nil {
		s.readFailed(ctx, "reader", "", err)
		return nil, err
	}
	return s.Sniff(ctx, header), nil
}

// SniffFile classifies the file at path on the host filesystem.
func (s *Sniffer) SniffFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header, err := ReadFileHeader(path)
	if err != nil {
		s.readFailed(ctx, "file", path, err)
		return nil, err
	}
	return s.Sniff(ctx, header), nil
}

// SniffPath classifies path read through the configured storage driver.
func (s *Sniffer) SniffPath(ctx context.Context, path string) (*Result, error) {
	header, err := ReadHeaderFrom(ctx, s.reader, path)
	if err != nil {
		s.readFailed(ctx, "path", path, err)
		return nil, err
	}
	return s.Sniff(ctx, header), nil
}

func (s *Sniffer) record(ctx context.Context, r *Result, n int, cached bool) {
	s.metrics.RecordClassification(ctx, r, n, cached)
	s.logger.WithFields(logrus.Fields{
		"type":       r.Type(),
		"stage":      r.Stage(),
		"header_len": n,
		"cached":     cached,
	}).Debug("classified header")
}

func (s *Sniffer) readFailed(ctx context.Context, op, path string, err error) {
	s.metrics.RecordReadError(ctx, op)
	s.logger.WithFields(logrus.Fields{
		"op":   op,
		"path": path,
	}).WithError(err).Warn("failed to read header")
}

// readSourceHeader reads from the start of seekable sources and falls back
// to a plain read for pipes and other streams that reject seeks.
func readSourceHeader(r io.Reader) ([]byte, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekCurrent); err == nil {
			return ReadHeaderAt(rs)
		}
	}
	return ReadHeader(r)
}
