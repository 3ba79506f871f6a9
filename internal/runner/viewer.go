package runner

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultViewers is the lookup order for the output log viewer.
var DefaultViewers = []string{"vim", "gedit"}

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

// FindViewer returns the first candidate available on the search path.
// "none" anywhere in the list disables viewers from that point on.
func FindViewer(candidates []string, lookPath LookPathFunc) (string, bool) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if c == "none" {
			return "", false
		}
		argv := SplitWords(c)
		if len(argv) == 0 {
			continue
		}
		if _, err := lookPath(argv[0]); err == nil {
			return c, true
		}
	}
	return "", false
}

// ViewerCommand opens path in viewer, positioned at the end of the file for
// the viewers that support it.
func ViewerCommand(viewer, path string) *exec.Cmd {
	argv := SplitWords(viewer)
	if len(argv) == 0 {
		argv = []string{"vi"}
	}
	switch filepath.Base(argv[0]) {
	case "vim", "vi", "nvim":
		argv = append(argv, "+normal G$", path)
	case "gedit":
		argv = append(argv, path, "+")
	default:
		argv = append(argv, path)
	}
	return exec.Command(argv[0], argv[1:]...)
}
