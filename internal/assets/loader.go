package assets

// AssetLoader defines the contract for loading style presets and templates.
type AssetLoader interface {
	// LoadStyle loads a YAML style preset by name (without .yaml extension).
	// Returns ErrStyleNotFound if the preset doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the word and preview templates of a set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplateSet(name string) (*TemplateSet, error)

	// ListStyles returns the available preset names, sorted.
	ListStyles() ([]string, error)
}
