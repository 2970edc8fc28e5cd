package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads template sets from a directory on the filesystem.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks so containment checks compare real paths
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// BasePath returns the resolved absolute base directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadTemplateSet loads {basePath}/templates/{name}/figure.tex and table.tex.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dirPath := filepath.Join(f.basePath, "templates", name)
	if err := f.verifyPathContainment(dirPath + string(filepath.Separator)); err != nil {
		return nil, err
	}

	figurePath := filepath.Join(dirPath, FigureFile)
	tablePath := filepath.Join(dirPath, TableFile)
	for _, p := range []string{figurePath, tablePath} {
		if err := f.verifyPathContainment(p); err != nil {
			return nil, err
		}
	}

	figure, figErr := os.ReadFile(figurePath) // #nosec G304 -- path validated above
	table, tabErr := os.ReadFile(tablePath)   // #nosec G304 -- path validated above

	return assembleTemplateSet(name, figure, table, figErr, tabErr)
}

// ListTemplateSets returns the set directories under {basePath}/templates.
// A missing templates directory yields an empty list.
func (f *FilesystemLoader) ListTemplateSets() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "templates"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return dirNames(entries), nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Symlinks are resolved so a link pointing outside basePath is rejected.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails later on read; the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// Separator suffix prevents /base/path matching /base/pathevil
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// assembleTemplateSet turns the two read results into a TemplateSet.
// Both files missing means the set does not exist; one missing means it is
// incomplete. Other read errors are reported as ErrAssetRead.
func assembleTemplateSet(name string, figure, table []byte, figErr, tabErr error) (*TemplateSet, error) {
	figMissing := errors.Is(figErr, fs.ErrNotExist)
	tabMissing := errors.Is(tabErr, fs.ErrNotExist)

	if figMissing && tabMissing {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if figErr != nil && !figMissing {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, FigureFile, figErr)
	}
	if tabErr != nil && !tabMissing {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, TableFile, tabErr)
	}
	if figMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, FigureFile)
	}
	if tabMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, TableFile)
	}

	return &TemplateSet{
		Name:   name,
		Figure: string(figure),
		Table:  string(table),
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
