// Package main provides the wordloom CLI: taxonomy seeding, token and
// score ingestion, the labeling jobs, and store statistics.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lexmesh/wordloom/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes user errors from system errors.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrUnmapped),
		errors.Is(err, types.ErrInvalidTier),
		errors.Is(err, types.ErrInvalidLabelType),
		errors.Is(err, types.ErrUnknownDimension):
		return exitUserError
	default:
		return exitSysError
	}
}
