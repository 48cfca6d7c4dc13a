package version

// Set at build time with -ldflags "-X openstruct/internal/version.Version=..."
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
