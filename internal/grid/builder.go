package grid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/javiermolinar/bangumi/internal/epg"
)

// ErrNoSource is returned when a builder has nothing to fetch from.
var ErrNoSource = errors.New("grid: no guide source")

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	Geometry     Geometry
	WindowLead   time.Duration
	WindowLength time.Duration
	GapTitle     string
	MaxWorkers   int // 0 uses GOMAXPROCS

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Builder fetches raw schedules, fills and lays them out, and publishes the
// result to a Store. It is safe to run off the interaction goroutine.
type Builder struct {
	source epg.Source
	store  *Store
	filler epg.Filler
	cfg    BuilderConfig
	logger *log.Logger
}

// NewBuilder creates a builder publishing into store.
func NewBuilder(source epg.Source, store *Store, cfg BuilderConfig, logger *log.Logger) *Builder {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{
		source: source,
		store:  store,
		filler: epg.NewFiller(cfg.GapTitle),
		cfg:    cfg,
		logger: logger.WithPrefix("grid"),
	}
}

// Store returns the store the builder publishes to.
func (b *Builder) Store() *Store {
	return b.store
}

// Window returns the window a rebuild at the current time would cover.
func (b *Builder) Window() epg.Window {
	return epg.WindowFor(b.cfg.Now(), b.cfg.WindowLead, b.cfg.WindowLength)
}

// Rebuild fetches the guide for typ and publishes a new layout. On failure
// nothing is published and the previous snapshot stays current.
func (b *Builder) Rebuild(ctx context.Context, typ epg.BroadcastType) (*Layout, error) {
	if b.source == nil {
		return nil, ErrNoSource
	}
	w := b.Window()
	start := time.Now()
	b.logger.Debug("rebuild started", "type", typ, "base", w.Base, "limit", w.Limit)

	guide, err := b.source.FetchGuide(ctx, typ, w.Base, w.Limit)
	if err != nil {
		b.logger.Warn("rebuild failed", "type", typ, "err", err)
		return nil, fmt.Errorf("fetching guide for %s: %w", typ, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := b.BuildLayout(guide, w)
	b.store.Publish(l)
	b.logger.Info("layout published",
		"type", typ,
		"generation", l.Generation,
		"channels", l.ChannelCount(),
		"cells", l.CellCount(),
		"took", time.Since(start))
	return l, nil
}

// BuildLayout fills every channel and lays out the result without publishing.
// Channels are processed in parallel; column order follows guide order.
func (b *Builder) BuildLayout(guide []epg.ChannelPrograms, w epg.Window) *Layout {
	mapper := iter.Mapper[epg.ChannelPrograms, Column]{MaxGoroutines: b.cfg.MaxWorkers}
	columns := mapper.Map(guide, func(cp *epg.ChannelPrograms) Column {
		return BuildColumn(b.filler.FillSchedule(*cp, w), w, b.cfg.Geometry)
	})
	return &Layout{Window: w, Geometry: b.cfg.Geometry, Columns: columns}
}

// CellCount returns the total number of cells across all columns.
func (l *Layout) CellCount() int {
	n := 0
	for i := range l.ChannelCount() {
		n += len(l.Columns[i].Cells)
	}
	return n
}
