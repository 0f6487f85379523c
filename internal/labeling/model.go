// Package labeling implements the batch jobs of the label pipeline: topic
// assignment via an externally trained topic model, and label propagation
// from comments to words.
package labeling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OutlierTopicID is the topic model's discard cluster. Predictions in this
// cluster are skipped, never stored.
const OutlierTopicID = -1

// Prediction is one topic-model result: an external cluster id and the
// model's confidence for the assignment.
type Prediction struct {
	TopicID    int
	Confidence float64
}

// TopicModel is the predict-on-batch interface to the externally trained
// topic model. Predict returns one prediction per input document, in order.
type TopicModel interface {
	Predict(ctx context.Context, documents []string) ([]Prediction, error)
}

// HTTPModel consumes a topic model served over HTTP: document batches go
// out as JSON, cluster ids and probabilities come back.
type HTTPModel struct {
	endpoint string
	client   *http.Client
}

// NewHTTPModel creates a model client for the given endpoint.
func NewHTTPModel(endpoint string) *HTTPModel {
	return &HTTPModel{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

type predictRequest struct {
	Documents []string `json:"documents"`
}

type predictResponse struct {
	Topics        []int     `json:"topics"`
	Probabilities []float64 `json:"probabilities"`
}

// Predict posts the batch to the model endpoint and decodes the per-document
// cluster ids and probabilities. A length mismatch between the two arrays,
// or between response and request, is an error.
func (m *HTTPModel) Predict(ctx context.Context, documents []string) ([]Prediction, error) {
	body, err := json.Marshal(predictRequest{Documents: documents})
	if err != nil {
		return nil, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call topic model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("topic model returned %d: %s", resp.StatusCode, string(data))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if len(out.Topics) != len(documents) || len(out.Probabilities) != len(documents) {
		return nil, fmt.Errorf("topic model returned %d topics and %d probabilities for %d documents",
			len(out.Topics), len(out.Probabilities), len(documents))
	}

	preds := make([]Prediction, len(documents))
	for i := range documents {
		preds[i] = Prediction{TopicID: out.Topics[i], Confidence: out.Probabilities[i]}
	}
	return preds, nil
}
