package version

// Version is replaced at build time with
// -ldflags "-X github.com/thomas-vilte/ghdash/internal/version.Version=x.y.z".
var Version = "0.1.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}
