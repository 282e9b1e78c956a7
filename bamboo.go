// Package bamboo is a desktop webview application framework: native Go
// windows rendering web UI, a duplex script/native bridge and a
// declarative window style model with per-platform dispatch.
//
// Application code lives under internal/; this package carries the
// module identity.
package bamboo

// Version is the framework version reported to pages and logs.
const Version = "1.0.0"
