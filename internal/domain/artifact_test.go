package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArtifact(t *testing.T) {
	t.Parallel()

	t.Run("creates a PDF artifact record", func(t *testing.T) {
		t.Parallel()

		artifact, err := NewArtifact("VR 2024-21 - punt 0003.pdf", "share://abc.pdf", 1024)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, artifact.ID)
		assert.Equal(t, PDFFormat, artifact.Format)
		assert.Equal(t, int64(1024), artifact.Size)
		assert.False(t, artifact.CreatedAt.IsZero())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		_, err := NewArtifact("", "share://abc.pdf", 1)
		assert.ErrorIs(t, err, ErrEmptyArtifactName)

		_, err = NewArtifact("naam.pdf", "", 1)
		assert.ErrorIs(t, err, ErrEmptyArtifactURI)
	})
}
