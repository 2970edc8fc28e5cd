package md2tex

import (
	"errors"

	"github.com/alnah/go-md2tex/internal/assets"
)

// DefaultTemplateSet is the name of the built-in template set.
const DefaultTemplateSet = assets.DefaultTemplateSetName

// AssetLoader defines the contract for loading LaTeX template sets.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTemplateSet loads figure and table templates by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if one of the templates is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)

	// ListTemplateSets returns the available set names, sorted.
	ListTemplateSets() ([]string, error)
}

// TemplateSet holds the LaTeX blocks emitted for embeds.
// Both templates must contain ---path---; ---caption--- is optional.
type TemplateSet struct {
	Name   string // Identifier (name or path)
	Figure string // Emitted for ![caption](path.png)
	Table  string // Emitted for ![caption](path.csv)
}

// NewTemplateSet creates a TemplateSet from figure and table LaTeX.
// This is a convenience constructor for users providing templates directly.
func NewTemplateSet(name, figure, table string) *TemplateSet {
	return &TemplateSet{
		Name:   name,
		Figure: figure,
		Table:  table,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom sets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - templates/{name}/figure.tex and table.tex for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter wraps an internal loader to return public types.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.loader.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &TemplateSet{
		Name:   ts.Name,
		Figure: ts.Figure,
		Table:  ts.Table,
	}, nil
}

func (a *assetLoaderAdapter) ListTemplateSets() ([]string, error) {
	names, err := a.loader.ListTemplateSets()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateSetNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
