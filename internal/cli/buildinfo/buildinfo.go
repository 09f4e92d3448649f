package buildinfo

// Build-time variables injected via -ldflags; defaults are used for dev builds.
var (
	version = "0.1.0-dev"
	commit  = ""
	date    = ""
)

// Version returns the semantic version string.
func Version() string {
	return version
}

// VersionSimple returns the version with a short commit hash for --version.
func VersionSimple() string {
	v := version
	if commit != "" {
		if len(commit) >= 7 {
			v += " (" + commit[:7] + ")"
		} else {
			v += " (" + commit + ")"
		}
	}
	return v
}

// Commit returns the full commit hash if provided via -ldflags.
func Commit() string { return commit }

// BuildDate returns the build date if provided via -ldflags.
func BuildDate() string { return date }
