// Package platform maps the host operating system and CPU architecture onto
// the fixed support matrix of published dymo-code artifacts.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrUnsupported marks an os/arch pair outside the support matrix. It is
// terminal: no network activity may happen after it.
var ErrUnsupported = errors.New("unsupported platform")

// Key identifies one published artifact variant.
type Key struct {
	OS   string // linux, macos, windows
	Arch string // x86_64, arm64
}

func (k Key) String() string {
	return k.OS + "/" + k.Arch
}

// osAliasTable accepts both uname-style kernel names and GOOS values.
// Windows entries match the shell signatures seen under MSYS-family
// environments (MINGW64_NT-10.0, MSYS_NT-..., CYGWIN_NT-...).
var osAliasTable = map[string][]string{
	"linux":   {"linux"},
	"macos":   {"darwin", "macos", "macosx", "osx"},
	"windows": {"windows", "mingw", "msys", "cygwin", "win32", "win64"},
}

var archAliasTable = map[string][]string{
	"x86_64": {"x86_64", "amd64", "x64"},
	"arm64":  {"arm64", "aarch64"},
}

// Detect resolves a kernel name and machine architecture string to a Key.
// Inputs are matched case-insensitively by substring against the alias
// tables, so "Linux"/"linux", "Darwin"/"macos" and "MINGW64_NT-10.0" all
// resolve. Anything outside the matrix returns ErrUnsupported.
func Detect(kernel, machine string) (Key, error) {
	osName, ok := matchAlias(kernel, osAliasTable)
	if !ok {
		return Key{}, fmt.Errorf("%w: unknown operating system %q", ErrUnsupported, kernel)
	}
	arch, ok := matchAlias(machine, archAliasTable)
	if !ok {
		return Key{}, fmt.Errorf("%w: unknown architecture %q", ErrUnsupported, machine)
	}
	return Key{OS: osName, Arch: arch}, nil
}

// Host detects the platform of the running process.
func Host() (Key, error) {
	return Detect(runtime.GOOS, runtime.GOARCH)
}

func matchAlias(value string, table map[string][]string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return "", false
	}
	for canonical, aliases := range table {
		for _, alias := range aliases {
			if strings.Contains(lower, alias) {
				return canonical, true
			}
		}
	}
	return "", false
}

// artifactTable is the exact set of filenames the release pipeline
// publishes. Windows artifacts carry the executable extension; others
// do not.
var artifactTable = map[Key]string{
	{OS: "linux", Arch: "x86_64"}:   "dymo-code-linux-x86_64",
	{OS: "linux", Arch: "arm64"}:    "dymo-code-linux-arm64",
	{OS: "macos", Arch: "x86_64"}:   "dymo-code-macos-x86_64",
	{OS: "macos", Arch: "arm64"}:    "dymo-code-macos-arm64",
	{OS: "windows", Arch: "x86_64"}: "dymo-code-windows-x86_64.exe",
	{OS: "windows", Arch: "arm64"}:  "dymo-code-windows-arm64.exe",
}

// ArtifactName returns the published artifact filename for key. It is a
// total function of the key: the result never depends on network state.
func ArtifactName(key Key) (string, error) {
	name, ok := artifactTable[key]
	if !ok {
		// Unreachable after Detect, but kept total.
		return "", fmt.Errorf("%w: no artifact for %s", ErrUnsupported, key)
	}
	return name, nil
}

// InstallName returns the filename the artifact is installed under, which
// is the plain invocation name without any platform or version suffix.
func InstallName(key Key) string {
	if key.OS == "windows" {
		return "dymo-code.exe"
	}
	return "dymo-code"
}
