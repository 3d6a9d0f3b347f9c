// Package frameworks embeds the built-in framework catalog YAML files
// into the binary.
package frameworks

import "embed"

// Embedded contains all built-in framework definitions.
//
//go:embed *.yaml
var Embedded embed.FS
