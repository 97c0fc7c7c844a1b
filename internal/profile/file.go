package profile

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// FileSource reads the profile from a single-record JSON file. The file holds
// exactly one user, so the user id is ignored.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed profile source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(_ context.Context, _ string) (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, eris.Wrapf(err, "profile: read %s", s.path)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, eris.Wrapf(err, "profile: parse %s", s.path)
	}

	return &rec, nil
}
