package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillsenselab/minutes/logger"
)

// LocalStore implements Store on the local filesystem under a base
// directory. Locations outside the base directory are rejected.
type LocalStore struct {
	basePath string
	log      *logger.Logger
}

// NewLocalStore creates a local artifact store rooted at basePath.
func NewLocalStore(basePath string, log *logger.Logger) (*LocalStore, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("artifact: resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("artifact: create base directory: %w", err)
	}
	return &LocalStore{basePath: abs, log: log.WithComponent("artifacts")}, nil
}

var _ Store = (*LocalStore)(nil)

// Release deletes the artifact file. A missing file is success.
func (s *LocalStore) Release(_ context.Context, location string) error {
	path, err := s.resolve(location)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.log.Warn("could not release audio artifact", logger.Fields(
			logger.FieldAudioPath, location,
			logger.FieldError, err.Error(),
		))
		return fmt.Errorf("artifact: release %s: %w", location, err)
	}
	s.log.Info("audio artifact released", logger.Fields(logger.FieldAudioPath, location))
	return nil
}

// Exists reports whether the artifact file is present.
func (s *LocalStore) Exists(_ context.Context, location string) (bool, error) {
	path, err := s.resolve(location)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("artifact: stat %s: %w", location, err)
	}
	return true, nil
}

func (s *LocalStore) resolve(location string) (string, error) {
	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.basePath, location)
	}
	path = filepath.Clean(path)
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact: location %q escapes base path", location)
	}
	return path, nil
}
