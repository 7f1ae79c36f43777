package cfrac

import _ "embed"

// Version is the release version of cfrac.
//
//go:embed VERSION
var Version string
