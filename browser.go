package tsar

import "github.com/tsarnet/tsar-go/internal/platform"

// openBrowserFn is a package-level indirection over platform.OpenBrowser
// so tests can substitute a spy without touching the real OS browser
// launch mechanism.
var openBrowserFn = platform.OpenBrowser
