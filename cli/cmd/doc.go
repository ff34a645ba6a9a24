// Package cmd provides the subcommands of nana: check, fmt, query, explore,
// and init.
//
// Every command that reads source documents accepts file names, names found
// on the search path, or "-" for stdin. Documents are compiled concurrently
// and reported in the order given.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file, and the key of the configuration mapping within
	// it.
	ConfigIdentifier = "config"
)
