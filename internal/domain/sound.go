package domain

// Sound describes one entry in a sound catalog.
type Sound struct {
	// ID is the stable identifier referenced by Task sound fields.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable label shown in listings.
	Name string `json:"name" yaml:"name"`

	// AssetRef locates the playable asset (a file path on this platform).
	AssetRef string `json:"asset_ref" yaml:"asset_ref"`
}
