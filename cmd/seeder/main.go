package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
)

// samples span all three tiers so the weighted ranking has something to
// reorder. Doc ids derive from content, so reseeding reproduces the
// same catalog byte for byte.
var samples = []struct {
	tier    string
	content string
	source  string
	title   string
}{
	{
		tier:    "T1",
		content: "Adaptive control loops must be re-baselined after any sustained drift beyond two evaluation windows.",
		source:  "ops-handbook",
		title:   "Re-baselining Policy",
	},
	{
		tier:    "T1",
		content: "Long horizon drift evaluation compares rolling score distributions against the frozen baseline.",
		source:  "ops-handbook",
		title:   "Drift Evaluation",
	},
	{
		tier:    "T1",
		content: "Embedding indexes are immutable artifacts; rebuild rather than patch when the catalog changes.",
		source:  "ops-handbook",
		title:   "Index Lifecycle",
	},
	{
		tier:    "T1",
		content: "Tier one documents define the retrieval contract and take precedence over all lower tiers.",
		source:  "ops-handbook",
		title:   "Tier Semantics",
	},
	{
		tier:    "T2",
		content: "The seasonal rebuild checklist covers catalog freeze, embedding run, and manifest verification.",
		source:  "playbooks",
		title:   "Seasonal Rebuild",
	},
	{
		tier:    "T2",
		content: "Query latency budgets assume a warm index loaded from local disk.",
		source:  "playbooks",
	},
	{
		tier:    "T2",
		content: "Reasons recorded in run logs feed the quarterly audit of retrieval usage.",
		source:  "playbooks",
	},
	{
		tier:    "T2",
		content: "Batch embedding throughput scales with the worker pool until the backend saturates.",
		source:  "playbooks",
	},
	{
		tier:    "T3",
		content: "Historical drift incidents from the first deployment year are kept for reference only.",
	},
	{
		tier:    "T3",
		content: "Early prototypes ranked documents by keyword overlap before the embedding migration.",
	},
	{
		tier:    "T3",
		content: "Archived design sketches describe a per-tier index layout that was never built.",
	},
	{
		tier:    "T3",
		content: "Notes from the initial comparison of MiniLM embedding model variants.",
	},
}

var (
	outFileName = flag.String("out", filepath.Join("data", catalog.SampleCatalogFile), "where to write the sample catalog")
	force       = flag.Bool("force", false, "overwrite an existing catalog")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func sampleDocuments() []core.Document {
	docs := make([]core.Document, len(samples))
	for i, s := range samples {
		id := core.IDFromContent(s.content)
		docs[i] = core.Document{
			DocID:   fmt.Sprintf("doc-%016x", uint64(id)),
			Tier:    s.tier,
			Content: s.content,
			Source:  s.source,
			Title:   s.title,
		}
	}
	return docs
}

func main() {
	docs := sampleDocuments()
	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			panic(err)
		}
	}

	if _, err := os.Stat(*outFileName); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists, use -force to overwrite\n", *outFileName)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		panic(err)
	}
	payload = append(payload, '\n')

	if err := os.MkdirAll(filepath.Dir(*outFileName), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outFileName, payload, 0o644); err != nil {
		panic(err)
	}

	hash, err := catalog.CanonicalHash(*outFileName)
	if err != nil {
		panic(err)
	}

	slog.Info("sample catalog written",
		"path", *outFileName,
		"documents", len(docs),
		"hash", hash)
}
