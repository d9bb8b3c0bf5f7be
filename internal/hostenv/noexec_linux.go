//go:build linux

package hostenv

import "os"

// InstallDirNoExec reports whether dir sits on a noexec mount. Best effort
// only: if anything looks odd, it returns false and the install proceeds.
func InstallDirNoExec(dir string) bool {
	if dir == "" {
		return false
	}

	// mountinfo first: it covers overlay setups that /proc/mounts flattens.
	if data, err := os.ReadFile("/proc/self/mountinfo"); err == nil { // #nosec G304 -- fixed procfs path
		if mounts := parseMountinfo(string(data)); len(mounts) > 0 {
			return noExecFor(dir, mounts)
		}
	}

	data, err := os.ReadFile("/proc/mounts") // #nosec G304 -- fixed procfs path
	if err != nil {
		return false
	}
	return noExecFor(dir, parseProcMounts(string(data)))
}
