package setcat

import (
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// Construction kinds used in logs and metrics.
const (
	kindCarrier        = "carrier"
	kindLazyCarrier    = "lazy_carrier"
	kindIdentity       = "identity"
	kindProduct        = "product"
	kindCoproduct      = "coproduct"
	kindExponential    = "exponential"
	kindPowerObject    = "power_object"
	kindCharacteristic = "characteristic"
	kindSubset         = "subset"
	kindTerminal       = "terminal"
	kindInitial        = "initial"
)

// Universe owns every cache of the engine: the semantics registry, the
// product, coproduct, exponential and power-object caches, and the canonical
// terminal, initial and truth carriers. Derived objects live as long as the
// Universe does; drop the Universe to release them.
//
// Repeated constructions over the same carriers return the identical objects
// for the lifetime of a Universe.
//
// A Universe is not safe for concurrent use.
type Universe struct {
	id      string
	cfg     Config
	logger  *zap.Logger
	metrics *Metrics

	semantics       map[any]any
	identities      map[any]any
	products        map[any]map[any]any
	coproducts      map[any]map[any]any
	exponentials    map[any]map[any]any
	powers          map[any]any
	characteristics map[any]map[any]any
	subsets         map[any]any
	terminals       map[any]any
	initials        map[any]any

	terminal *Set[Unit]
	initial  *Set[Void]
	truth    *Set[bool]
}

// Option configures a Universe.
type Option func(*Universe)

// WithConfig sets the limits of the Universe. Zero fields take defaults.
func WithConfig(cfg Config) Option {
	return func(u *Universe) {
		u.cfg = cfg.Normalize()
	}
}

// WithLogger sets the logger; constructions are traced at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(u *Universe) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithMetrics records constructions and cache hits into m.
func WithMetrics(m *Metrics) Option {
	return func(u *Universe) {
		u.metrics = m
	}
}

// NewUniverse creates an empty Universe.
func NewUniverse(opts ...Option) *Universe {
	u := &Universe{
		id:              uuid.New().String(),
		cfg:             DefaultConfig(),
		logger:          zap.NewNop(),
		semantics:       map[any]any{},
		identities:      map[any]any{},
		products:        map[any]map[any]any{},
		coproducts:      map[any]map[any]any{},
		exponentials:    map[any]map[any]any{},
		powers:          map[any]any{},
		characteristics: map[any]map[any]any{},
		subsets:         map[any]any{},
		terminals:       map[any]any{},
		initials:        map[any]any{},
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.With(zap.String("universe", u.id))
	return u
}

// ID identifies the Universe in logs.
func (u *Universe) ID() string { return u.id }

// Config returns the normalized limits of u.
func (u *Universe) Config() Config { return u.cfg }

// Logger returns the logger, tagged with the universe id.
func (u *Universe) Logger() *zap.Logger { return u.logger }

func (u *Universe) constructed(kind string, mode CarrierKind, tag string, card Cardinality, start time.Time) {
	span := timespan.BetweenTimes(start, time.Now())
	u.metrics.recordConstruction(kind, mode)
	u.logger.Debug("constructed",
		zap.String("kind", kind),
		zap.Stringer("mode", mode),
		zap.String("tag", tag),
		zap.Stringer("cardinality", card),
		zap.Duration("elapsed", span.Duration()),
	)
}

func (u *Universe) cacheHit(kind string, tag string) {
	u.metrics.recordCacheHit(kind)
	u.logger.Debug("cache hit", zap.String("kind", kind), zap.String("tag", tag))
}

func lookup2(m map[any]map[any]any, a, b any) (any, bool) {
	inner, ok := m[a]
	if !ok {
		return nil, false
	}
	v, ok := inner[b]
	return v, ok
}

func store2(m map[any]map[any]any, a, b, v any) {
	inner, ok := m[a]
	if !ok {
		inner = map[any]any{}
		m[a] = inner
	}
	inner[b] = v
}
