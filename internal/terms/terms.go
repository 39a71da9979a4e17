// Package terms ranks title keywords by price-weighted TF-IDF
// significance: terms that are distinctive across the corpus and show
// up on expensive listings rank first.
package terms

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/guarzo/auctionscope/internal/extract"
	"github.com/guarzo/auctionscope/internal/model"
)

const (
	// minFrequency drops long-tail terms whose price averages are
	// statistically unreliable.
	minFrequency = 3
	topN         = 10
)

var (
	nonWord = regexp.MustCompile(`[^\w\s]`)

	stopWords = map[string]struct{}{
		"the": {}, "and": {}, "or": {}, "a": {}, "an": {}, "in": {},
		"on": {}, "at": {}, "for": {}, "to": {}, "of": {}, "with": {}, "by": {},
	}
)

// Score tokenizes every listing title, computes per-term document
// frequency and inverse document frequency over the whole corpus, joins
// each term with the average price of the listings containing it, and
// returns the top 10 terms by tfIdf*averagePrice. Repeated tokens
// within one title count once. Listings whose price does not parse
// still contribute to frequency but are excluded from the price mean.
// The result is deterministic for a fixed input order: ties keep the
// order in which terms were first seen.
func Score(listings []model.Listing) []model.TermScore {
	if len(listings) == 0 {
		return nil
	}

	termFreq := make(map[string]int)
	termPrices := make(map[string][]float64)
	var order []string

	for _, l := range listings {
		price, priceOK := extract.Price(l.Price)
		for _, token := range distinctTokens(l.Title) {
			if _, seen := termFreq[token]; !seen {
				order = append(order, token)
			}
			termFreq[token]++
			if priceOK {
				termPrices[token] = append(termPrices[token], price)
			}
		}
	}

	numDocs := float64(len(listings))
	results := make([]model.TermScore, 0, len(order))
	for _, term := range order {
		freq := termFreq[term]
		if freq < minFrequency {
			continue
		}
		idf := math.Log(numDocs / float64(freq))
		results = append(results, model.TermScore{
			Term:         term,
			TFIDF:        float64(freq) * idf,
			AveragePrice: meanOf(termPrices[term]),
			Frequency:    freq,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TFIDF*results[i].AveragePrice > results[j].TFIDF*results[j].AveragePrice
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// distinctTokens lowercases a title, strips everything that is not a
// word character or whitespace, and returns the tokens surviving the
// stop-word and minimum-length filters, deduplicated in first-seen
// order so the overall ranking stays deterministic.
func distinctTokens(title string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(title), "")
	tokens := strings.Fields(cleaned)

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func meanOf(sample []float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample))
}
