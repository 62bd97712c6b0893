package logger

import (
	"go/version"
	"runtime"
)

// Tested toolchain range, inclusive lower bound and exclusive upper bound.
const (
	MinTestedGo = "go1.24"
	MaxTestedGo = "go1.27"
)

// CheckRuntime warns when goVersion (runtime.Version() if empty) is outside
// the tested toolchain range. It reports whether a warning was emitted.
func CheckRuntime(l *Logger, goVersion string) bool {
	if goVersion == "" {
		goVersion = runtime.Version()
	}
	if !version.IsValid(goVersion) {
		return false
	}
	if version.Compare(goVersion, MinTestedGo) >= 0 && version.Compare(goVersion, MaxTestedGo) < 0 {
		return false
	}
	l.Warn("Go versions < " + MinTestedGo + " or >= " + MaxTestedGo +
		" are currently not tested, use at your own risk.")
	return true
}
