package graphrag

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
)

// FactSource produces grounding facts for a question.
type FactSource interface {
	Retrieve(ctx context.Context, query string) ([]Fact, error)
}

// Retriever resolves question terms against a RelationFinder.
//
// Thread-safety: safe for concurrent use as long as the finder is.
type Retriever struct {
	finder      graph.RelationFinder
	parallelism int
	logger      *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithParallelism sets how many term lookups may run at once. Values below 1
// are treated as 1 (sequential).
func WithParallelism(n int) RetrieverOption {
	return func(r *Retriever) {
		if n < 1 {
			n = 1
		}
		r.parallelism = n
	}
}

// WithLogger sets the logger used for per-term debug output.
func WithLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a Retriever backed by finder.
func NewRetriever(finder graph.RelationFinder, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		finder:      finder,
		parallelism: 1,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parallelism returns the configured lookup concurrency.
func (r *Retriever) Parallelism() int {
	return r.parallelism
}

// Retrieve returns the de-duplicated facts for every entity named in query,
// in term order then store order. An empty, non-nil slice means nothing
// matched. Any lookup error aborts the call and is returned as-is.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Fact, error) {
	terms := distinct(ExtractTerms(query))
	if len(terms) == 0 {
		return []Fact{}, nil
	}

	var (
		results [][]graph.Relation
		err     error
	)
	if r.parallelism > 1 && len(terms) > 1 {
		results, err = r.lookupParallel(ctx, terms)
	} else {
		results, err = r.lookupSequential(ctx, terms)
	}
	if err != nil {
		return nil, err
	}

	set := NewFactSet()
	for _, rels := range results {
		for _, rel := range rels {
			set.Add(FactFromRelation(rel))
		}
	}
	return set.Facts(), nil
}

func (r *Retriever) lookupSequential(ctx context.Context, terms []string) ([][]graph.Relation, error) {
	results := make([][]graph.Relation, len(terms))
	for i, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rels, err := r.lookup(ctx, term)
		if err != nil {
			return nil, err
		}
		results[i] = rels
	}
	return results, nil
}

func (r *Retriever) lookupParallel(ctx context.Context, terms []string) ([][]graph.Relation, error) {
	results := make([][]graph.Relation, len(terms))
	errs := make([]error, len(terms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, term := range terms {
		g.Go(func() error {
			rels, err := r.lookup(gctx, term)
			if err != nil {
				errs[i] = err
				return err
			}
			results[i] = rels
			return nil
		})
	}
	groupErr := g.Wait()
	if groupErr == nil {
		return results, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Report the failure of the earliest term, ignoring lookups that only
	// failed because a sibling cancelled the group.
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	return nil, groupErr
}

func (r *Retriever) lookup(ctx context.Context, term string) ([]graph.Relation, error) {
	start := time.Now()
	rels, err := r.finder.FindRelations(ctx, term)
	if err != nil {
		r.logger.DebugContext(ctx, "relation lookup failed",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	r.logger.DebugContext(ctx, "relation lookup",
		slog.String("term", term),
		slog.Int("relations", len(rels)),
		slog.Duration("duration", time.Since(start)),
	)
	return rels, nil
}
