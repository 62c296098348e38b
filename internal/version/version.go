package version

// Version is the kafka-acceptance version. Overridden at build time via
// -ldflags "-X github.com/meshstack/kafka-acceptance/internal/version.Version=...".
var Version = "0.1.0-dev"
