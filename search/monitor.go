package search

import "time"

// SearchMonitor receives progress callbacks during candidate generation.
// Implementations can surface progress to a UI or collect timings; all
// methods are called from the goroutine running the search.
type SearchMonitor interface {
	// SearchStarted is called once at the beginning of a search.
	SearchStarted(query string)

	// QueryEmbedded is called after the query has been embedded and
	// normalized, with the dimensionality of the resulting vector.
	QueryEmbedded(dim int)

	// CandidatesBuilt is called after every index row has been scored.
	CandidatesBuilt(count int)

	// SearchCompleted is called once at the end of a successful search.
	SearchCompleted(query string, count int, elapsed time.Duration)
}

// noopMonitor is the default monitor when none is supplied.
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (noopMonitor) SearchStarted(query string)                               {}
func (noopMonitor) QueryEmbedded(dim int)                                    {}
func (noopMonitor) CandidatesBuilt(count int)                                {}
func (noopMonitor) SearchCompleted(query string, count int, d time.Duration) {}
