// Package refresh re-runs the acquisition and analytics pipeline on a
// schedule, keeping the written reports fresh for standing searches.
package refresh

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/guarzo/auctionscope/internal/engine"
	"github.com/guarzo/auctionscope/internal/model"
)

// Searcher acquires listings for a term. *ebay.Client satisfies this.
type Searcher interface {
	Search(ctx context.Context, term string) ([]model.Listing, error)
}

// Publisher receives each freshly computed snapshot.
type Publisher func(term string, snap engine.Snapshot) error

// Service schedules periodic search-and-recompute runs.
type Service struct {
	searcher  Searcher
	publisher Publisher
	terms     []string
	spec      model.FilterSpec
	cron      *cron.Cron
	timeout   time.Duration
}

// NewService creates a refresh service for a fixed set of search terms
// under one filter spec.
func NewService(searcher Searcher, publisher Publisher, searchTerms []string, spec model.FilterSpec) *Service {
	return &Service{
		searcher:  searcher,
		publisher: publisher,
		terms:     searchTerms,
		spec:      spec,
		cron:      cron.New(),
		timeout:   5 * time.Minute,
	}
}

// Start registers the cron schedule and begins running. The returned
// stop function drains in-flight runs before returning.
func (s *Service) Start(schedule string) (stop func(), err error) {
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, err
	}
	s.cron.Start()
	return func() {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}, nil
}

// RunOnce executes one full refresh pass over every configured term.
// Failures for one term do not stop the others.
func (s *Service) RunOnce() {
	for _, term := range s.terms {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		listings, err := s.searcher.Search(ctx, term)
		cancel()
		if err != nil {
			log.Printf("[refresh] search %q failed: %v", term, err)
			continue
		}

		snap := engine.Compute(listings, s.spec)
		if err := s.publisher(term, snap); err != nil {
			log.Printf("[refresh] publish %q failed: %v", term, err)
			continue
		}
		log.Printf("[refresh] %q: %d listings, %d after filtering", term, len(listings), len(snap.Filtered))
	}
}
