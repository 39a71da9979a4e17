// Package concurrent fans product detail fetching out over a bounded
// worker pool so a page of search results resolves quickly without
// flooding the source.
package concurrent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/guarzo/auctionscope/internal/model"
)

// DetailProvider fetches one product's detail record. *ebay.Client
// satisfies this.
type DetailProvider interface {
	FetchProduct(ctx context.Context, productLink string) (*model.ProductDetail, error)
}

// Result pairs a listing with its fetched detail or error.
type Result struct {
	Listing model.Listing
	Detail  *model.ProductDetail
	Error   error
}

// Progress reports how far a batch fetch has gotten.
type Progress struct {
	Completed int
	Total     int
	Current   string
	Errors    int
}

// DetailFetcher runs batched detail fetches with retries.
type DetailFetcher struct {
	workers      int
	timeout      time.Duration
	maxRetries   int
	progressChan chan Progress

	mu     sync.Mutex
	errors int
}

// FetcherConfig holds pool configuration. Zero values get defaults.
type FetcherConfig struct {
	Workers    int
	Timeout    time.Duration
	MaxRetries int
}

// NewDetailFetcher creates a fetch pool.
func NewDetailFetcher(cfg FetcherConfig) *DetailFetcher {
	workers := cfg.Workers
	if workers == 0 {
		workers = 4
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 3
	}

	return &DetailFetcher{
		workers:      workers,
		timeout:      timeout,
		maxRetries:   retries,
		progressChan: make(chan Progress, 100),
	}
}

// FetchAll fetches the detail record for every listing. Results keep no
// particular order; each carries its source listing. Listings without a
// product link produce an error result rather than a request.
func (f *DetailFetcher) FetchAll(ctx context.Context, listings []model.Listing, provider DetailProvider) []Result {
	if len(listings) == 0 {
		return nil
	}

	jobs := make(chan model.Listing, len(listings))
	results := make(chan Result, len(listings))

	var wg sync.WaitGroup
	for w := 0; w < f.workers; w++ {
		wg.Add(1)
		go f.worker(ctx, jobs, results, provider, &wg)
	}

	go func() {
		defer close(jobs)
		for _, l := range listings {
			select {
			case jobs <- l:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, 0, len(listings))
	completed := 0
	for completed < len(listings) {
		select {
		case res := <-results:
			all = append(all, res)
			completed++
			f.sendProgress(completed, len(listings), res.Listing.Title)
		case <-ctx.Done():
			wg.Wait()
			return all
		}
	}

	wg.Wait()
	close(results)
	return all
}

func (f *DetailFetcher) worker(ctx context.Context, jobs <-chan model.Listing, results chan<- Result, provider DetailProvider, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case listing, ok := <-jobs:
			if !ok {
				return
			}

			res := f.fetchWithRetry(ctx, listing, provider)
			if res.Error != nil {
				f.mu.Lock()
				f.errors++
				f.mu.Unlock()
			}

			select {
			case results <- res:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (f *DetailFetcher) fetchWithRetry(ctx context.Context, listing model.Listing, provider DetailProvider) Result {
	if listing.ProductLink == "" {
		return Result{Listing: listing, Error: fmt.Errorf("listing %q has no product link", listing.Title)}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < f.maxRetries; attempt++ {
		detail, err := provider.FetchProduct(timeoutCtx, listing.ProductLink)
		if err == nil {
			return Result{Listing: listing, Detail: detail}
		}
		lastErr = err

		if attempt < f.maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-time.After(backoff):
			case <-timeoutCtx.Done():
				return Result{Listing: listing, Error: timeoutCtx.Err()}
			}
		}
	}

	return Result{
		Listing: listing,
		Error:   fmt.Errorf("failed after %d attempts: %w", f.maxRetries, lastErr),
	}
}

func (f *DetailFetcher) sendProgress(completed, total int, current string) {
	f.mu.Lock()
	errs := f.errors
	f.mu.Unlock()

	select {
	case f.progressChan <- Progress{Completed: completed, Total: total, Current: current, Errors: errs}:
	default:
		// Don't block if nobody is draining progress
	}
}

// ProgressChannel returns the progress channel for monitoring.
func (f *DetailFetcher) ProgressChannel() <-chan Progress {
	return f.progressChan
}
