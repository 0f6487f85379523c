// Package types defines the entity types, shared constants, and standard
// error values for the wordloom label store: taxonomy nodes, comment and
// word labels, word tokens, and dimension scores.
package types
