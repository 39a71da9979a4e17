// Command auctionscope searches for auctions, runs the market
// analytics over the results, and writes CSV reports for resellers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/guarzo/auctionscope/internal/cache"
	"github.com/guarzo/auctionscope/internal/concurrent"
	"github.com/guarzo/auctionscope/internal/config"
	"github.com/guarzo/auctionscope/internal/ebay"
	"github.com/guarzo/auctionscope/internal/engine"
	"github.com/guarzo/auctionscope/internal/filter"
	"github.com/guarzo/auctionscope/internal/model"
	"github.com/guarzo/auctionscope/internal/progress"
	"github.com/guarzo/auctionscope/internal/refresh"
	"github.com/guarzo/auctionscope/internal/report"
)

func main() {
	var (
		term           = flag.String("term", "", "search term to fetch auctions for")
		input          = flag.String("input", "", "read listings from a JSON file instead of searching")
		out            = flag.String("out", "", "output directory (default from OUTPUT_PATH)")
		minPrice       = flag.Float64("min-price", 0, "minimum price filter")
		maxPrice       = flag.Float64("max-price", 10000, "maximum price filter")
		condition      = flag.String("condition", model.ConditionAll, "condition category filter")
		sortBy         = flag.String("sort", string(model.SortDefault), "sort key: default|price-asc|price-desc|bids-desc|time-asc")
		where          = flag.String("where", "", "custom predicates, comma separated field:op:value (op: contains|equals|greater|less)")
		removeOutliers = flag.Bool("remove-outliers", false, "tighten filters to the 1.5*IQR inlier bounds")
		withDetails    = flag.Bool("details", false, "also fetch per-product detail pages")
		serve          = flag.Bool("serve", false, "keep running and refresh on REFRESH_CRON")
		quiet          = flag.Bool("quiet", false, "suppress progress output")
	)
	flag.Parse()

	cfg := config.Load()
	if *out == "" {
		*out = cfg.OutputPath
	}

	if *term == "" && *input == "" {
		fmt.Fprintln(os.Stderr, "usage: auctionscope -term <search term> [flags], or -input <listings.json>")
		flag.Usage()
		os.Exit(2)
	}

	spec, err := buildSpec(*minPrice, *maxPrice, *condition, *sortBy, *where)
	if err != nil {
		log.Fatalf("invalid filter spec: %v", err)
	}

	store, err := cache.New(cfg.CachePath)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}

	client := ebay.NewClient(ebay.Config{
		BaseURL:      cfg.EbayBaseURL,
		Timeout:      cfg.HTTPTimeout,
		RequestEvery: cfg.RequestEvery,
		Cache:        store,
	})

	ctx := context.Background()

	listings, err := loadListings(ctx, client, *term, *input)
	if err != nil {
		log.Fatalf("acquire listings: %v", err)
	}
	log.Printf("acquired %d listings", len(listings))

	if *removeOutliers {
		spec = filter.WithoutOutliers(listings, spec)
		log.Printf("outlier bounds applied: price %.2f-%.2f, %d predicates",
			spec.MinPrice, spec.MaxPrice, len(spec.Predicates))
	}

	snap := engine.Compute(listings, spec)
	if err := report.WriteSnapshot(*out, snap); err != nil {
		log.Fatalf("write reports: %v", err)
	}
	log.Printf("wrote reports for %d filtered listings to %s", len(snap.Filtered), *out)

	if *withDetails {
		if err := fetchDetails(ctx, cfg, client, snap.Filtered, *out, *quiet); err != nil {
			log.Fatalf("fetch details: %v", err)
		}
	}

	if *serve {
		if cfg.RefreshCron == "" {
			log.Fatal("-serve requires REFRESH_CRON to be set")
		}
		runScheduler(cfg, client, *term, spec, *out)
	}
}

func buildSpec(minPrice, maxPrice float64, condition, sortBy, where string) (model.FilterSpec, error) {
	spec := model.FilterSpec{
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Condition: condition,
		SortBy:    model.SortKey(sortBy),
	}

	switch spec.SortBy {
	case model.SortDefault, model.SortPriceAsc, model.SortPriceDesc, model.SortBidsDesc, model.SortTimeAsc:
	default:
		return spec, fmt.Errorf("unknown sort key %q", sortBy)
	}

	if where == "" {
		return spec, nil
	}
	for _, clause := range strings.Split(where, ",") {
		parts := strings.SplitN(strings.TrimSpace(clause), ":", 3)
		if len(parts) != 3 {
			return spec, fmt.Errorf("predicate %q is not field:op:value", clause)
		}
		op := model.Operator(parts[1])
		switch op {
		case model.OpContains, model.OpEquals, model.OpGreater, model.OpLess:
		default:
			return spec, fmt.Errorf("unknown operator %q", parts[1])
		}
		spec.Predicates = append(spec.Predicates, model.Predicate{
			Field: parts[0],
			Op:    op,
			Value: parts[2],
		})
	}
	return spec, nil
}

func loadListings(ctx context.Context, client *ebay.Client, term, input string) ([]model.Listing, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		var listings []model.Listing
		if err := json.Unmarshal(data, &listings); err != nil {
			return nil, fmt.Errorf("decode %s: %w", input, err)
		}
		return listings, nil
	}
	return client.Search(ctx, term)
}

func fetchDetails(ctx context.Context, cfg *config.Config, client *ebay.Client, listings []model.Listing, out string, quiet bool) error {
	fetcher := concurrent.NewDetailFetcher(concurrent.FetcherConfig{
		Workers:    cfg.DetailWorkers,
		MaxRetries: cfg.MaxRetries,
	})

	ind := progress.WithTotal("fetching product details", len(listings), quiet)
	ind.Start()
	go func() {
		for p := range fetcher.ProgressChannel() {
			ind.Update(p.Completed)
		}
	}()

	results := fetcher.FetchAll(ctx, listings, client)
	ind.Finish()

	details := make([]model.ProductDetail, 0, len(results))
	for _, res := range results {
		if res.Error != nil {
			details = append(details, model.ProductDetail{
				ProductLink: res.Listing.ProductLink,
				Error:       res.Error.Error(),
			})
			continue
		}
		details = append(details, *res.Detail)
	}

	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "details.json"), data, 0644)
}

func runScheduler(cfg *config.Config, client *ebay.Client, term string, spec model.FilterSpec, out string) {
	publish := func(t string, snap engine.Snapshot) error {
		return report.WriteSnapshot(filepath.Join(out, sanitizeDir(t)), snap)
	}

	svc := refresh.NewService(client, publish, []string{term}, spec)
	stop, err := svc.Start(cfg.RefreshCron)
	if err != nil {
		log.Fatalf("start scheduler: %v", err)
	}
	log.Printf("scheduler running on %q, Ctrl-C to stop", cfg.RefreshCron)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	stop()
}

func sanitizeDir(term string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, term)
}
