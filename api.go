package mpath

import (
	"fmt"
	"time"

	"github.com/pdrpinto/mpath/internal"
	"go.uber.org/zap"
)

var (
	cellPool  = internal.NewPool[Cell](0)
	statePool = internal.NewPool[cellState](0)
)

// Options defines parameters for a Pathfinder.
type Options struct {
	Settings Settings
	Logger   *zap.Logger
	Metrics  *Metrics
	// Cache is used when Caching is set. A nil Cache means NewPathCache().
	Cache   PathCaching
	Caching bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSettings replaces the default settings.
func WithSettings(settings Settings) Option {
	return func(options *Options) { options.Settings = settings }
}

// WithLogger sets the logger. The package Logger() is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithMetrics records every search into m.
func WithMetrics(m *Metrics) Option {
	return func(options *Options) { options.Metrics = m }
}

// WithPathCaching enables caching from the start. A nil cache selects the
// default unbounded PathCache.
func WithPathCaching(cache PathCaching) Option {
	return func(options *Options) {
		options.Cache = cache
		options.Caching = true
	}
}

// Pathfinder runs A* searches over one fixed-size grid.
//
// A Pathfinder is not safe for concurrent use: its scratch buffers, open set
// and cache are reused by every search. Engines built over the same
// FromCells array are independent of each other.
type Pathfinder struct {
	width  int
	height int
	size   int

	settings Settings
	source   GridSource
	logger   *zap.Logger
	metrics  *Metrics
	cache    PathCaching

	cells     []Cell
	cellsBuf  *[]Cell // nil when searching the caller's array in place
	states    []cellState
	statesBuf *[]cellState
	open      *openSet
	neighbors [maxNeighbors]int32

	run        searchRun
	generation uint64
	closed     bool
}

// New builds a Pathfinder over source.
func New(source GridSource, options ...Option) (*Pathfinder, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	// --- Apply options ---
	opts := Options{Settings: DefaultSettings()}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = Logger()
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}

	width, height, err := source.dimensions()
	if err != nil {
		return nil, fmt.Errorf("new pathfinder: %w", err)
	}

	p := &Pathfinder{
		width:    width,
		height:   height,
		size:     width * height,
		settings: opts.Settings,
		source:   source,
		logger:   opts.Logger.Named("mpath"),
		metrics:  opts.Metrics,
	}

	// --- Resolve the grid buffer ---
	if cells := source.inPlace(); cells != nil {
		if err := verifyCellOrder(cells, height); err != nil {
			return nil, fmt.Errorf("new pathfinder: %w", err)
		}
		p.cells = cells
	} else {
		p.cellsBuf = cellPool.Rent(p.size)
		p.cells = *p.cellsBuf
		if err := source.refresh(p.cells, width, height); err != nil {
			cellPool.Return(p.cellsBuf)
			return nil, fmt.Errorf("new pathfinder: %w", err)
		}
	}

	p.statesBuf = statePool.Rent(p.size)
	p.states = *p.statesBuf
	p.open = newOpenSet(p.states, opts.Settings.InitialBufferSize)

	if opts.Caching {
		p.cache = opts.Cache
		if p.cache == nil {
			p.cache = NewPathCache()
		}
	}

	p.logger.Debug("pathfinder created",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("source", source.kind()),
		zap.Bool("caching", p.cache != nil))

	return p, nil
}

// Width returns the grid width.
func (p *Pathfinder) Width() int { return p.width }

// Height returns the grid height.
func (p *Pathfinder) Height() int { return p.height }

// Settings returns the settings the engine was built with.
func (p *Pathfinder) Settings() Settings { return p.settings }

// GetPath searches for a route for agent from one cell to another.
//
// A missing route is reported as a result with IsSuccess() == false, not as
// an error. The returned result belongs to the caller, who must Close it.
func (p *Pathfinder) GetPath(agent Agent, from, to Coordinate) (*PathResult, error) {
	if p.closed {
		return nil, ErrClosed
	}
	agentSize, err := p.validate(agent, from, to)
	if err != nil {
		return nil, err
	}

	if from == to {
		p.metrics.observeSearch(outcomeTrivial, 0, 0, 0)
		return emptyResult, nil
	}

	if p.cache != nil {
		cached, ok, err := p.cache.CachedPath(agent, from, to)
		if err != nil {
			return nil, fmt.Errorf("path cache lookup: %w", err)
		}
		// a hit without a result counts as a miss
		ok = ok && cached != nil
		p.metrics.observeCacheLookup(ok)
		if ok {
			p.metrics.observeSearch(outcomeCached, 0, 0, cached.Len())
			return cached, nil
		}
	}

	started := time.Now()

	if err := p.begin(agentSize, from, to); err != nil {
		return nil, err
	}
	for !p.advance() {
	}

	result := Failure()
	if p.found() {
		result = p.reconstructPath()
	}

	if p.cache != nil && result.IsSuccess() {
		if err := p.cache.CachePath(agent, from, to, result); err != nil {
			_ = result.Close()
			return nil, fmt.Errorf("path cache store: %w", err)
		}
	}

	outcome := outcomeFailure
	if result.IsSuccess() {
		outcome = outcomeSuccess
	}
	p.metrics.observeSearch(outcome, time.Since(started), p.run.expanded, result.Len())

	if ce := p.logger.Check(zap.DebugLevel, "path search finished"); ce != nil {
		ce.Write(
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Int("agent_size", agentSize),
			zap.Bool("found", result.IsSuccess()),
			zap.Int("expanded", p.run.expanded),
			zap.Int("length", result.Len()))
	}

	return result, nil
}

func (p *Pathfinder) validate(agent Agent, from, to Coordinate) (int, error) {
	if agent == nil {
		return 0, ErrNilAgent
	}
	size := agent.Size()
	if size < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidAgentSize, size)
	}
	if !p.inBounds(to.X, to.Y) {
		return 0, fmt.Errorf("%w: %v in %dx%d grid", ErrDestinationOutOfBounds, to, p.width, p.height)
	}
	if !p.inBounds(from.X, from.Y) {
		return 0, fmt.Errorf("%w: %v in %dx%d grid", ErrStartOutOfBounds, from, p.width, p.height)
	}
	return size, nil
}

// EnablePathCaching turns caching on. A nil cache selects the default
// PathCache. A previously enabled, different cache is closed.
func (p *Pathfinder) EnablePathCaching(cache PathCaching) error {
	if p.closed {
		return ErrClosed
	}
	if cache == nil {
		cache = NewPathCache()
	}
	if p.cache != nil && p.cache != cache {
		if err := p.cache.Close(); err != nil {
			return fmt.Errorf("close previous path cache: %w", err)
		}
	}
	p.cache = cache
	p.logger.Debug("path caching enabled")
	return nil
}

// DisablePathCaching closes the cache and stops caching.
func (p *Pathfinder) DisablePathCaching() error {
	if p.closed {
		return ErrClosed
	}
	if p.cache == nil {
		return nil
	}
	err := p.cache.Close()
	p.cache = nil
	p.logger.Debug("path caching disabled")
	return err
}

// InvalidateCache drops every cached path. Call it after changing the grid.
func (p *Pathfinder) InvalidateCache() error {
	if p.closed {
		return ErrClosed
	}
	if p.cache == nil {
		return nil
	}
	p.logger.Debug("path cache invalidated")
	return p.cache.ClearCache()
}

// Close releases the pooled grid and scratch buffers and the cache. The
// caller's FromCells array is left alone.
func (p *Pathfinder) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	p.generation++

	if p.cellsBuf != nil {
		cellPool.Return(p.cellsBuf)
		p.cellsBuf = nil
	}
	statePool.Return(p.statesBuf)
	p.statesBuf = nil
	p.cells = nil
	p.states = nil

	var err error
	if p.cache != nil {
		err = p.cache.Close()
		p.cache = nil
	}

	p.logger.Debug("pathfinder closed")
	return err
}
