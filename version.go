package envoi

import "runtime/debug"

// Version is set at build time via ldflags.
var Version = "dev"

// backendModule is the PDF library named in the producer field.
const backendModule = "github.com/go-pdf/fpdf"

// ToolVersion returns Version, or the module version when built with
// go install.
func ToolVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// BackendVersion returns the version of the linked PDF library.
func BackendVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == backendModule {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return "unknown"
}
