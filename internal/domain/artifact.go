package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Artifact
var (
	ErrEmptyArtifactName = errors.New("artifact name cannot be empty")
	ErrEmptyArtifactURI  = errors.New("artifact URI cannot be empty")
)

// PDFFormat is the media type of every artifact this service produces.
const PDFFormat = "application/pdf"

// Artifact is the logical record of a generated binary. Exactly one
// artifact is the currently attached one for a given report or meeting
// bundle slot; attaching a new one supersedes, but does not invalidate,
// the previous record. The physical bytes behind URI are deleted only
// after a replacement is durably linked.
type Artifact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
}

// NewArtifact creates an Artifact record for freshly stored PDF bytes.
// Returns an error if validation fails.
func NewArtifact(name, uri string, size int64) (*Artifact, error) {
	artifact := &Artifact{
		ID:        uuid.New(),
		Name:      name,
		Format:    PDFFormat,
		Size:      size,
		URI:       uri,
		CreatedAt: time.Now().UTC(),
	}

	if err := artifact.Validate(); err != nil {
		return nil, err
	}

	return artifact, nil
}

// Validate checks if the Artifact has valid data.
func (a *Artifact) Validate() error {
	if a.Name == "" {
		return ErrEmptyArtifactName
	}
	if a.URI == "" {
		return ErrEmptyArtifactURI
	}
	return nil
}
