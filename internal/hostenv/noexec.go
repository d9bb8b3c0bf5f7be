// Package hostenv answers preflight questions about the machine the
// installer runs on. An install directory on a noexec mount would accept
// the binary but refuse to run it, so the pipeline warns about it early.
package hostenv

import (
	"path/filepath"
	"strings"
)

type mount struct {
	point  string
	noexec bool
}

// parseMountinfo reads /proc/self/mountinfo content. Per the kernel docs
// the mount point is field 5 and per-mount options field 6; super options
// follow the "-" separator and can also carry noexec.
func parseMountinfo(content string) []mount {
	var out []mount
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 6 {
			continue
		}
		sep := -1
		for i, f := range fields {
			if f == "-" {
				sep = i
				break
			}
		}
		if sep < 0 {
			continue
		}
		noexec := hasOption(fields[5], "noexec")
		if sep+3 < len(fields) {
			noexec = noexec || hasOption(fields[sep+3], "noexec")
		}
		out = append(out, mount{point: unescapePath(fields[4]), noexec: noexec})
	}
	return out
}

// parseProcMounts reads /proc/mounts content (device point fstype options).
func parseProcMounts(content string) []mount {
	var out []mount
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 4 {
			continue
		}
		out = append(out, mount{point: unescapePath(fields[1]), noexec: hasOption(fields[3], "noexec")})
	}
	return out
}

func hasOption(opts, want string) bool {
	for _, part := range strings.Split(opts, ",") {
		if strings.TrimSpace(part) == want {
			return true
		}
	}
	return false
}

// Procfs encodes spaces and a few special characters with octal escapes.
func unescapePath(value string) string {
	repl := strings.NewReplacer(
		"\\040", " ",
		"\\011", "\t",
		"\\012", "\n",
		"\\134", "\\",
	)
	return repl.Replace(value)
}

// noExecFor reports whether the longest mount-point prefix of dir carries
// the noexec option.
func noExecFor(dir string, mounts []mount) bool {
	dest := filepath.ToSlash(filepath.Clean(dir))
	if dest == "" || dest == "." {
		return false
	}

	bestLen := -1
	noexec := false
	for _, m := range mounts {
		point := filepath.ToSlash(filepath.Clean(m.point))
		if point == "" || point == "." {
			continue
		}
		if !underMount(dest, point) {
			continue
		}
		if len(point) > bestLen {
			bestLen = len(point)
			noexec = m.noexec
		}
	}
	return noexec
}

func underMount(path, point string) bool {
	if point == "/" {
		return strings.HasPrefix(path, "/")
	}
	return path == point || strings.HasPrefix(path, point+"/")
}
