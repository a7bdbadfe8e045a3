package makegen

import "runtime"

// Platform holds the shell fragments that differ between the hosts tr2make runs on.
// The fragments are picked for the generating host, not for the machine the binary targets.
type Platform struct {
	ExeSuffix string
	CleanCmd  string
	MkdirCmd  string
}

var posixPlatform = Platform{
	CleanCmd: "rm -f $(OBJ) $(TARGET)",
	MkdirCmd: "@mkdir -p $(OBJ_DIR)",
}

// platforms is keyed by GOOS, anything not listed gets posixPlatform
var platforms = map[string]Platform{
	"windows": {
		ExeSuffix: ".exe",
		CleanCmd:  "del /Q $(OBJ) $(TARGET)",
		MkdirCmd:  `@if not exist "$(OBJ_DIR)" mkdir "$(OBJ_DIR)"`,
	},
}

func PlatformFor(goos string) Platform {
	if p, ok := platforms[goos]; ok {
		return p
	}
	return posixPlatform
}

// HostPlatform returns the platform tr2make itself is running on
func HostPlatform() Platform { return PlatformFor(runtime.GOOS) }
