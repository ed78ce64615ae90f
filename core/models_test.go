package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestContentHash(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "plain text",
			content: "drift detection in adaptive systems",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "unicode text",
			content: "naïve café über",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := ContentHash(tt.content)
			h2 := ContentHash(tt.content)

			if h1 != h2 {
				t.Errorf("ContentHash() not deterministic: %s vs %s", h1, h2)
			}
			if len(h1) != 64 {
				t.Errorf("ContentHash() length = %d, want 64 hex chars", len(h1))
			}
		})
	}
}

func TestContentHash_Different(t *testing.T) {
	if ContentHash("alpha") == ContentHash("beta") {
		t.Error("ContentHash() produced same digest for different content")
	}
}
