package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, handler http.HandlerFunc) Analyzer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	analyzer, err := NewGatewayAnalyzer(GatewayAnalyzerConfig{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		Model:        "google/gemini-2.5-flash",
		MaxPlacement: 16,
	})
	require.NoError(t, err)
	return analyzer
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(reply))
}

func TestAnalyzeParsesExtraction(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		chatReply(t, w, `Here is the result: {"placement": 2, "kills": 7}`)
	})

	extraction, err := analyzer.Analyze(context.Background(), "https://cdn.example/shot.png")
	require.NoError(t, err)
	require.True(t, extraction.Complete())
	assert.Equal(t, 2, *extraction.Placement)
	assert.Equal(t, 7, *extraction.Kills)
}

func TestAnalyzeNullFields(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `{"placement": null, "kills": null}`)
	})

	extraction, err := analyzer.Analyze(context.Background(), "https://cdn.example/shot.png")
	require.NoError(t, err)
	assert.False(t, extraction.Complete())
}

func TestAnalyzeOutOfRangeIsNulledOut(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `{"placement": 40, "kills": -3}`)
	})

	extraction, err := analyzer.Analyze(context.Background(), "https://cdn.example/shot.png")
	require.NoError(t, err)
	assert.Nil(t, extraction.Placement)
	assert.Nil(t, extraction.Kills)
}

func TestAnalyzeGatewayStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"payment required", http.StatusPaymentRequired, ErrPaymentRequired},
		{"generic failure", http.StatusBadGateway, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			extraction, err := analyzer.Analyze(context.Background(), "https://cdn.example/shot.png")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			// Прочий сбой шлюза равнозначен пустому распознаванию.
			require.NoError(t, err)
			assert.False(t, extraction.Complete())
		})
	}
}

func TestAnalyzeGarbageContent(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "I could not read the screenshot, sorry.")
	})

	extraction, err := analyzer.Analyze(context.Background(), "https://cdn.example/shot.png")
	require.NoError(t, err)
	assert.False(t, extraction.Complete())
}
