// Package mock provides a test double implementation of ai.Embedder.
//
// MockEmbedder runs without an embedding service and is deterministic:
// the same text always embeds to the same unit-length vector, so
// similarity-dependent tests are stable across runs.
//
//	mockEmbed := mock.NewMockEmbedder()
//	mockEmbed.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.6, 0.8}, nil
//	}
//	count := mockEmbed.CallCount()
package mock
