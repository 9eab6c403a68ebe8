package config

// Version is the borderroute binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/borderroute/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
