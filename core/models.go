package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// ID is a compact identifier derived from document content.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentHash returns the SHA-256 hex digest of text. Row metadata carries
// it so a cached vector can be traced back to the exact content embedded.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Document is a single entry in the document catalog.
type Document struct {
	DocID   string `json:"doc_id"`
	Tier    string `json:"tier"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
	Title   string `json:"title,omitempty"`
}

// Candidate pairs a catalog document with its raw similarity to a query.
// Candidates are produced in catalog row order; ordering is a ranking
// concern and happens after tier weighting.
type Candidate struct {
	DocID  string
	Tier   string
	RawSim float64
}

// Result is a candidate extended with its tier multiplier and the
// weighted score used as the ranking key.
type Result struct {
	DocID         string
	Tier          string
	RawSim        float64
	Multiplier    float64
	WeightedScore float64
}
