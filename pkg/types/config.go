package types

import "errors"

// Config holds the store location and job parameters for wordloom.
type Config struct {
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	ModelEndpoint string `json:"model_endpoint" yaml:"model_endpoint"`
	BatchSize     int    `json:"batch_size" yaml:"batch_size"`
}

// DefaultBatchSize bounds memory per topic-assignment batch. Batching is a
// resource bound, not a parallelism mechanism.
const DefaultBatchSize = 5000

// Config validation errors.
var (
	ErrDataDirEmpty     = errors.New("data_dir must not be empty")
	ErrBatchSizeInvalid = errors.New("batch size must be positive")
)

// Validate checks that the Config is well-formed. A zero BatchSize is
// replaced by DefaultBatchSize rather than rejected.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.BatchSize < 0 {
		return ErrBatchSizeInvalid
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	return nil
}
