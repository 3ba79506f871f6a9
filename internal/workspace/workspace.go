package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	dirName = ".cmdhandler"

	// EnvDir overrides the data directory.
	EnvDir = "CMDHANDLER_DIR"

	dbFileName       = "data.db"
	scriptFileName   = "cmdfile"
	logFileName      = "output"
	errorFileName    = "output.err"
	editFileName     = "cmdedit"
	transferFileName = "download"
	configFileName   = "config.yaml"
	envFileName      = ".env"
	debugLogFileName = "cmdhandler.log"
)

// Layout names every file the tool keeps under its data directory.
type Layout struct {
	Dir string
	// Transfer overrides the Download/Upload file. Relative paths resolve
	// against Dir.
	Transfer string
}

func (l Layout) Ensure() error {
	if strings.TrimSpace(l.Dir) == "" {
		return errors.New("workspace: empty data dir")
	}
	return os.MkdirAll(l.Dir, 0o755)
}

func (l Layout) DBPath() string       { return filepath.Join(l.Dir, dbFileName) }
func (l Layout) ScriptPath() string   { return filepath.Join(l.Dir, scriptFileName) }
func (l Layout) LogPath() string      { return filepath.Join(l.Dir, logFileName) }
func (l Layout) ErrorPath() string    { return filepath.Join(l.Dir, errorFileName) }
func (l Layout) EditPath() string     { return filepath.Join(l.Dir, editFileName) }
func (l Layout) ConfigPath() string   { return filepath.Join(l.Dir, configFileName) }
func (l Layout) EnvPath() string      { return filepath.Join(l.Dir, envFileName) }
func (l Layout) DebugLogPath() string { return filepath.Join(l.Dir, debugLogFileName) }

// TransferPath is the plain-text file used by Download and Upload.
func (l Layout) TransferPath() string {
	p := strings.TrimSpace(l.Transfer)
	if p == "" {
		return filepath.Join(l.Dir, transferFileName)
	}
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Dir, p)
}

// Temporaries lists the artifacts removed by Cleanup.
func (l Layout) Temporaries() []string {
	return []string{
		l.EditPath(),
		l.ScriptPath(),
		l.LogPath(),
		l.ErrorPath(),
		l.TransferPath(),
	}
}

// Cleanup removes the temporary artifacts and returns the ones that existed.
func (l Layout) Cleanup() ([]string, error) {
	var removed []string
	var errs []error
	for _, p := range l.Temporaries() {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
		case errors.Is(err, os.ErrNotExist):
		default:
			errs = append(errs, err)
		}
	}
	return removed, errors.Join(errs...)
}

// DiscoverDir walks up from start looking for a project-local .cmdhandler dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir is ~/.cmdhandler.
func DefaultDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

// ResolveDir picks the data directory:
//  1. explicit (--dir)
//  2. $CMDHANDLER_DIR
//  3. a .cmdhandler dir in the working directory or one of its parents
//  4. ~/.cmdhandler
func ResolveDir(explicit string) (string, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return homedir.Expand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDir)); v != "" {
		return homedir.Expand(v)
	}
	if cwd, err := os.Getwd(); err == nil {
		if found, ok := DiscoverDir(cwd); ok {
			return found, nil
		}
	}
	return DefaultDir()
}
