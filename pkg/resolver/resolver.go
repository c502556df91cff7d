package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// DefaultFetchTimeout bounds one shared fetch-and-store, lookup included.
const DefaultFetchTimeout = 2 * time.Minute

// Lookup fetches a record from the upstream metadata service by bare id.
type Lookup interface {
	GetRecord(ctx context.Context, id string) (*arxiv.Record, error)
}

// Resolver returns cached papers, fetching and storing them on first use.
type Resolver struct {
	papers       store.PapersStore
	lookup       Lookup
	logger       *zap.Logger
	fetchTimeout time.Duration
	group        singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFetchTimeout bounds a shared fetch independently of the caller that
// started it.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.fetchTimeout = d
		}
	}
}

// New creates a Resolver.
func New(papers store.PapersStore, lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		papers:       papers,
		lookup:       lookup,
		logger:       zap.NewNop(),
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the paper for an external arXiv id, from the store if it
// is cached and from the upstream service otherwise.
func (r *Resolver) Resolve(ctx context.Context, externalID string) (*store.Paper, error) {
	id, err := NormalizeID(externalID)
	if err != nil {
		return nil, err
	}
	catalogID := arxiv.CatalogID(id)
	log := r.logger.With(zap.String("identifier", catalogID))

	paper, err := r.papers.FindByIdentifier(ctx, catalogID)
	if err == nil {
		log.Debug("cache hit")
		return paper, nil
	}
	if !errors.Is(err, store.ErrPaperNotFound) {
		return nil, fmt.Errorf("looking up %s: %w", catalogID, err)
	}
	log.Info("cache miss")

	// The shared fetch is detached from the caller that started it; each
	// caller stops waiting on its own context.
	ch := r.group.DoChan(catalogID, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()
		return r.fetchAndStore(fetchCtx, log, id, catalogID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.(*store.Paper)
		out := *shared
		return &out, nil
	}
}

// fetchAndStore stores the record under catalogID, the key Resolve looks
// up, even when the upstream header names the paper differently (arXiv
// answers a versioned id with the unversioned identifier).
func (r *Resolver) fetchAndStore(ctx context.Context, log *zap.Logger, id, catalogID string) (*store.Paper, error) {
	record, err := r.lookup.GetRecord(ctx, id)
	if err != nil {
		log.Warn("upstream lookup failed", zap.Error(err))
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}

	if err := ValidateRecord(record); err != nil {
		log.Warn("upstream record rejected", zap.Error(err))
		return nil, err
	}
	paper, err := ToPaper(record)
	if err != nil {
		log.Warn("upstream record rejected", zap.Error(err))
		return nil, err
	}
	if paper.Identifier != catalogID {
		log.Debug("upstream identifier differs from request", zap.String("upstream_identifier", paper.Identifier))
		paper.Identifier = catalogID
	}

	stored, err := r.papers.InsertPaper(ctx, paper)
	if errors.Is(err, store.ErrPaperExists) {
		log.Info("paper stored concurrently, re-reading")
		existing, findErr := r.papers.FindByIdentifier(ctx, catalogID)
		if findErr != nil {
			return nil, fmt.Errorf("re-reading %s after conflict: %w", catalogID, findErr)
		}
		return existing, nil
	}
	if err != nil {
		log.Error("storing paper failed", zap.Error(err))
		return nil, fmt.Errorf("storing %s: %w", paper.Identifier, err)
	}

	log.Info("paper stored",
		zap.Uint("id", stored.ID),
		zap.Int("authors", len(stored.Authors)),
	)
	return stored, nil
}
