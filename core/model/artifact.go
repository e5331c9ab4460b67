package model

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
)

// ArtifactFormat identifies the on-disk layout written by SaveArtifact.
const ArtifactFormat = "scorecast.artifact/v1"

// Artifact is the persisted unit: fitted weights plus the ordered feature
// names the model was trained on. Inference must present features in
// exactly this order.
type Artifact struct {
	Format       string        `json:"format"`
	FeatureNames []string      `json:"feature_names"`
	Model        *ModelWeights `json:"model"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewArtifact pairs weights with feature names. The weights are sealed with
// a checksum.
func NewArtifact(weights *ModelWeights, featureNames []string) (*Artifact, error) {
	if weights == nil {
		return nil, errors.NewValueError("NewArtifact", "weights cannot be nil")
	}
	w := weights.Clone()
	w.Seal()
	a := &Artifact{
		Format:       ArtifactFormat,
		FeatureNames: append([]string(nil), featureNames...),
		Model:        w,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that the artifact is complete and self-consistent.
func (a *Artifact) Validate() error {
	if a.Model == nil {
		return errors.NewValueError("Artifact.Validate", "model weights are missing")
	}
	if err := a.Model.Validate(); err != nil {
		return err
	}
	if len(a.FeatureNames) != len(a.Model.Coefficients) {
		return errors.NewDimensionError("Artifact.Validate", len(a.Model.Coefficients), len(a.FeatureNames), 1)
	}
	seen := make(map[string]struct{}, len(a.FeatureNames))
	for _, name := range a.FeatureNames {
		if name == "" {
			return errors.NewValueError("Artifact.Validate", "feature names must not be empty")
		}
		if _, dup := seen[name]; dup {
			return errors.NewValueError("Artifact.Validate", "duplicate feature name "+name)
		}
		seen[name] = struct{}{}
	}
	return a.Model.VerifyChecksum()
}

// WriteTo encodes the artifact as indented JSON.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return 0, errors.Wrap(err, "encode artifact")
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// ReadArtifact decodes and validates an artifact from r.
func ReadArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrap(err, "decode artifact")
	}
	if a.Format != ArtifactFormat {
		return nil, errors.NewValueError("ReadArtifact", "unsupported artifact format "+a.Format)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveArtifact writes the artifact to path, creating parent directories and
// replacing any existing file. The file is written to a temporary name in
// the same directory and renamed into place.
func SaveArtifact(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create model directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temporary artifact")
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temporary artifact")
	}

	if _, err := a.WriteTo(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write artifact %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write artifact %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace artifact %s", path)
	}
	return nil
}

// LoadArtifact reads an artifact written by SaveArtifact. A missing file
// yields a *errors.NotFoundError.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("model artifact", path)
		}
		return nil, errors.Wrapf(err, "open artifact %s", path)
	}
	defer f.Close()

	a, err := ReadArtifact(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load artifact %s", path)
	}
	return a, nil
}
