package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the set is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// HasCustomLoader reports whether a custom base path is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// LoadTemplateSet loads a template set, trying the custom loader first.
// Only "not found" errors fall back; validation and I/O errors do not.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplateSet(name)
	}

	ts, err := r.custom.LoadTemplateSet(name)
	if err == nil {
		return ts, nil
	}
	if !errors.Is(err, ErrTemplateSetNotFound) {
		return nil, err
	}

	return r.embedded.LoadTemplateSet(name)
}

// ListTemplateSets returns the union of custom and embedded set names.
func (r *AssetResolver) ListTemplateSets() ([]string, error) {
	names, err := r.embedded.ListTemplateSets()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.ListTemplateSets()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names)+len(custom))
	merged := make([]string, 0, len(names)+len(custom))
	for _, n := range append(names, custom...) {
		if !seen[n] {
			seen[n] = true
			merged = append(merged, n)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
