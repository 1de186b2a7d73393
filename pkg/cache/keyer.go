package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// SheetKey is the key of a fetched spreadsheet body.
	SheetKey(url string) string

	// ArtifactKey is the key of a rendered snapshot.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts identifies a rendered snapshot.
type ArtifactKeyOpts struct {
	Layout      string  `json:"layout"`
	RecordsHash string  `json:"records_hash"`
	Format      string  `json:"format"`
	Scale       float64 `json:"scale"`
	OptionsHash string  `json:"options_hash,omitempty"`
}

// DefaultKeyer builds keys of the form "<type>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SheetKey hashes the sheet URL.
func (DefaultKeyer) SheetKey(url string) string {
	return hashKey("sheet", url)
}

// ArtifactKey hashes every field of opts.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), opts)
}
