//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the nana module embedded at build time.
//
//go:embed VERSION
var version string

// Version is the semantic version of the nana module, printed by the CLI
// when users pass --version.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "nana"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Flatten and resolve block-structured nana programs"
	// PathEnv names the environment variable holding the source search path.
	PathEnv = "NANAPATH"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
