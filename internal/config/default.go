package config

import _ "embed"

// defaultManifest is the built-in descriptor set used when no manifest
// file exists at the configured path.
//
//go:embed mintup.yaml
var defaultManifest []byte

// Default parses the embedded manifest. The embedded document is part of
// the binary, so a parse failure is a programming error.
func Default() (*Manifest, error) {
	return Parse(defaultManifest)
}
