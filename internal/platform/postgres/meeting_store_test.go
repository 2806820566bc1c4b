package postgres

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbesluit/reportgen/internal/store"
)

func TestArtifactURI(t *testing.T) {
	t.Parallel()

	reportID := uuid.New()

	t.Run("valid URI passes through", func(t *testing.T) {
		t.Parallel()

		uri, err := artifactURI(reportID, sql.NullString{String: "share://abc.pdf", Valid: true})
		require.NoError(t, err)
		assert.Equal(t, "share://abc.pdf", uri)
	})

	t.Run("NULL means the report has no attached PDF", func(t *testing.T) {
		t.Parallel()

		_, err := artifactURI(reportID, sql.NullString{})
		assert.ErrorIs(t, err, store.ErrArtifactNotFound)
		assert.Contains(t, err.Error(), reportID.String())
	})
}
