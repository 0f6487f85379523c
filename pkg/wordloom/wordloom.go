// Package wordloom holds project-wide metadata.
package wordloom

// Version is the wordloom release version.
const Version = "0.3.0"
