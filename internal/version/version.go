package version

// Name is the application name shown in the TUI header.
var Name = "keyenv"

// Version is injected at build time via -ldflags "-X keyenv/internal/version.Version=...".
// Defaults to "dev" when not injected.
var Version = "dev"
