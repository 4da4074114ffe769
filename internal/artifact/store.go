// Package artifact persists trained model pairs, keyed by model version.
// One version maps to exactly one stored object holding both the vectorizer
// and the classifier, which is what keeps mismatched pairs impossible.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"

	appErr "github.com/openclaims/riskprice/internal/pkg/errors"

	"github.com/openclaims/riskprice/internal/filestore"
	"github.com/openclaims/riskprice/internal/risk"
)

type Store struct {
	files filestore.Store
}

func NewStore(files filestore.Store) *Store {
	return &Store{files: files}
}

func artifactKey(version int64) string {
	return fmt.Sprintf("model_v%d.json", version)
}

func (s *Store) Save(ctx context.Context, m *risk.Model, version int64) error {
	if version <= 0 {
		return fmt.Errorf("artifact version must be positive, got %d", version)
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return s.files.Save(ctx, artifactKey(version), bytes.NewReader(data))
}

// Load returns the pair trained as the given version, or ErrMissingArtifact
// when nothing is stored under it (including version 0, which means no
// training run has ever completed).
func (s *Store) Load(ctx context.Context, version int64) (*risk.Model, error) {
	if version <= 0 {
		return nil, appErr.ErrMissingArtifact
	}
	r, err := s.files.Open(ctx, artifactKey(version))
	if err != nil {
		if err == filestore.ErrKeyNotFound {
			return nil, appErr.ErrMissingArtifact
		}
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return risk.Unmarshal(data)
}
