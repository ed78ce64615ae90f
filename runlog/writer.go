package runlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/index"
)

// Entry holds everything one run log records.
type Entry struct {
	RunID       string
	Timestamp   time.Time
	User        string
	Reason      string
	Seed        *int64
	Query       string
	TopK        int
	Multipliers map[string]float64
	Context     index.Manifest
	Results     []core.Result
}

// Writer renders run entries into the log directory.
type Writer struct {
	dir   string
	clock func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the time source used when an entry has no timestamp.
// Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(w *Writer) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// NewWriter creates a Writer that logs into dir. The directory is
// created on first write.
func NewWriter(dir string, opts ...Option) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirRequired
	}

	w := &Writer{
		dir:   dir,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Write renders the entry and creates its log file, returning the
// path. The file name carries the entry timestamp; a collision within
// the same second gets a numeric suffix instead of overwriting.
func (w *Writer) Write(e Entry) (string, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = w.clock()
	}
	e.Timestamp = e.Timestamp.UTC()
	if e.User == "" {
		e.User = CurrentUser()
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := e.Timestamp.Format("20060102_150405")
	content := render(e)

	for n := 1; ; n++ {
		name := fmt.Sprintf("rankit_run_%s.log", stamp)
		if n > 1 {
			name = fmt.Sprintf("rankit_run_%s_%d.log", stamp, n)
		}
		path := filepath.Join(w.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create log file: %w", err)
		}

		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write log file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close log file: %w", err)
		}
		return path, nil
	}
}

// CurrentUser resolves the login name for the log's User line. It
// falls back to $USER and then to "unknown" so a run never fails on
// user lookup alone.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

func render(e Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== RANKIT Run Log ===\n")
	fmt.Fprintf(&b, "Run ID: %s\n", e.RunID)
	fmt.Fprintf(&b, "Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "User: %s\n", e.User)
	fmt.Fprintf(&b, "Reason: %s\n", e.Reason)
	fmt.Fprintf(&b, "Seed: %s\n", seedString(e.Seed))
	fmt.Fprintf(&b, "Query: %s\n", e.Query)

	fmt.Fprintf(&b, "\nConfiguration:\n")
	fmt.Fprintf(&b, "  top_k: %d\n", e.TopK)
	fmt.Fprintf(&b, "  tier_multipliers:\n")
	tiers := make([]string, 0, len(e.Multipliers))
	for tier := range e.Multipliers {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		fmt.Fprintf(&b, "    %s: %.2f\n", tier, e.Multipliers[tier])
	}

	fmt.Fprintf(&b, "\nEmbedding Context:\n")
	fmt.Fprintf(&b, "  model: %s\n", e.Context.ModelName)
	fmt.Fprintf(&b, "  dim: %d\n", e.Context.EmbeddingDim)
	fmt.Fprintf(&b, "  normalized: %t\n", e.Context.Normalized)
	fmt.Fprintf(&b, "  source_manifest_hash: %s\n", e.Context.SourceManifestHash)
	fmt.Fprintf(&b, "  created_at_utc: %s\n", e.Context.CreatedAtUTC.Format(time.RFC3339))

	fmt.Fprintf(&b, "\nResults (top %d):\n", e.TopK)
	for i, r := range e.Results {
		fmt.Fprintf(&b, "  #%d %s | sim=%.3f x mult(%s)=%.2f => weighted=%.3f\n",
			i+1, r.DocID, r.RawSim, r.Tier, r.Multiplier, r.WeightedScore)
	}

	return b.String()
}

func seedString(seed *int64) string {
	if seed == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *seed)
}
