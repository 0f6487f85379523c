// Unit tests for the HTTP topic-model client against a local test server.
package labeling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPModelPredict(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, preds []Prediction, err error)
	}{
		{
			name: "decodes topics and probabilities in document order",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req predictRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Len(t, req.Documents, 2)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				json.NewEncoder(w).Encode(predictResponse{
					Topics:        []int{3, -1},
					Probabilities: []float64{0.8, 0.0},
				})
			},
			check: func(t *testing.T, preds []Prediction, err error) {
				require.NoError(t, err)
				require.Len(t, preds, 2)
				assert.Equal(t, Prediction{TopicID: 3, Confidence: 0.8}, preds[0])
				assert.Equal(t, OutlierTopicID, preds[1].TopicID)
			},
		},
		{
			name: "non-200 status is an error carrying the body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not trained", http.StatusServiceUnavailable)
			},
			check: func(t *testing.T, preds []Prediction, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "503")
				assert.Contains(t, err.Error(), "model not trained")
			},
		},
		{
			name: "length mismatch is an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(predictResponse{
					Topics:        []int{3},
					Probabilities: []float64{0.8},
				})
			},
			check: func(t *testing.T, preds []Prediction, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "1 topics")
			},
		},
		{
			name: "malformed response body is an error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			check: func(t *testing.T, preds []Prediction, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "decode predict response")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			model := NewHTTPModel(srv.URL)
			preds, err := model.Predict(context.Background(), []string{"doc one", "doc two"})
			tt.check(t, preds, err)
		})
	}
}

func TestHTTPModelUnreachableEndpoint(t *testing.T) {
	model := NewHTTPModel("http://127.0.0.1:1/predict")
	_, err := model.Predict(context.Background(), []string{"doc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call topic model")
}
