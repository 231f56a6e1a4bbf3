package files

import (
	"errors"
	"path/filepath"
)

var (
	ErrDirNotFound = errors.New("no directory found during walk")
	ErrStopWalk    = errors.New("WalkUp: stop")
)

// A WalkUpFunc takes a directory and returns an error.
type WalkUpFunc func(dir string) error

// WalkUp calls walker with startdir and then each of its ancestors, up to and
// including the filesystem root.
//
// If walker returns ErrStopWalk, WalkUp stops and returns the current
// directory. Any other error stops the walk and is returned. If ErrStopWalk is
// never returned, WalkUp returns ErrDirNotFound.
func WalkUp(startdir string, walker WalkUpFunc) (string, error) {
	dir, err := filepath.Abs(startdir)
	if err != nil {
		return "", err
	}

	for {
		err := walker(dir)
		if err == ErrStopWalk {
			return dir, nil
		}
		if err != nil {
			return "", err
		}
		if dir == filepath.Dir(dir) {
			return "", ErrDirNotFound
		}
		dir = filepath.Dir(dir)
	}
}

// FindUp returns the first of the candidate file names that exists in
// startdir or one of its ancestors.
func FindUp(startdir string, candidates ...string) (string, error) {
	var found string
	_, err := WalkUp(startdir, func(dir string) error {
		for _, c := range candidates {
			ok, err := Exists(dir, c)
			if err != nil {
				return err
			}
			if ok {
				found = filepath.Join(dir, c)
				return ErrStopWalk
			}
		}
		return nil
	})
	return found, err
}
