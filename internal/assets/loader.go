package assets

// AssetLoader defines the contract for loading LaTeX template sets.
// Implementations may load from embedded assets, filesystem, or elsewhere.
type AssetLoader interface {
	// LoadTemplateSet loads figure.tex and table.tex for the named set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if one of the two files is missing.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplateSet(name string) (*TemplateSet, error)

	// ListTemplateSets returns the names of the available sets, sorted.
	ListTemplateSets() ([]string, error)
}
