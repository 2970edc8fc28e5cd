package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads template sets from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplateSet loads templates/{name}/figure.tex and table.tex.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	figure, figErr := templates.ReadFile(path.Join(dir, FigureFile))
	table, tabErr := templates.ReadFile(path.Join(dir, TableFile))

	return assembleTemplateSet(name, figure, table, figErr, tabErr)
}

// ListTemplateSets returns the embedded set names, sorted.
func (e *EmbeddedLoader) ListTemplateSets() ([]string, error) {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return dirNames(entries), nil
}

// dirNames returns the sorted names of directory entries.
func dirNames(entries []fs.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
