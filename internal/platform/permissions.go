package platform

import (
	"fmt"
	"os"
	"runtime"
)

// SnapshotMode is the permission set snapshot files end up with.
const SnapshotMode os.FileMode = 0644

// Publish gives a freshly written file SnapshotMode. Files replaced through a
// temp file and rename start out owner-only. Windows has no Unix permission
// bits, so there Publish only checks that path exists.
func Publish(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	if runtime.GOOS == "windows" || info.Mode().Perm() == SnapshotMode {
		return nil
	}
	if err := os.Chmod(path, SnapshotMode); err != nil {
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	return nil
}
