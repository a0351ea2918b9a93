// Package parser defines the interface implemented by snippet source
// readers.
package parser

import "github.com/wedtex/snipconv/internal/model"

// Source reads snippet records from one legacy editor's definition
// files.
type Source interface {
	// Parse reads every recognizable entry in source order.
	Parse() ([]model.Snippet, error)

	// Name identifies the source format.
	Name() string
}
