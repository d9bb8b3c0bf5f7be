//go:build !linux

package hostenv

// InstallDirNoExec only has a procfs-backed answer on linux; elsewhere the
// check is skipped.
func InstallDirNoExec(dir string) bool {
	return false
}
