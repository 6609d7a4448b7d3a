// Package types defines the board, column, card, and label entities, slug
// derivation, configuration, and standard error types shared by the corkline
// persistence and store layers.
package types
