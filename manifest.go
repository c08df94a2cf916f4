// manifest.go
//
// Package manifest. Imports name either a path directly or a bare package
// name; bare names resolve through a YAML manifest next to the program:
//
//	packages:
//	  mathutils: ./pkgs/mathutils.rs
//	  strutils: ./pkgs/strutils.go
package luma

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultManifestName is looked for in the program's directory when no
// manifest path is configured explicitly.
const DefaultManifestName = "luma.yaml"

type manifestFile struct {
	Packages map[string]string `yaml:"packages"`
}

// LoadManifest reads a package manifest and returns its alias→path table.
func LoadManifest(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf manifestFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, err
	}
	if mf.Packages == nil {
		mf.Packages = map[string]string{}
	}
	return mf.Packages, nil
}
