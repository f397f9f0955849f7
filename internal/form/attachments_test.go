package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costamaya/backoffice/internal/models"
)

func writeTempImage(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestEncodeFileProducesDataURI(t *testing.T) {
	path := writeTempImage(t, "bow.png", 64)

	a, err := EncodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bow.png", a.Name)
	assert.Equal(t, int64(64), a.Size)
	assert.True(t, strings.HasPrefix(a.DataURI, "data:image/png;base64,"))
}

func TestEncodeFileRejectsOversized(t *testing.T) {
	path := writeTempImage(t, "huge.jpg", MaxAttachmentBytes+1)

	_, err := EncodeFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "over the")
}

func TestImageDraftCountCapRejectsExplicitly(t *testing.T) {
	d := NewImageDraft(nil)
	for i := 0; i < MaxAttachments; i++ {
		require.NoError(t, d.Add(Attachment{Name: "a.png"}))
	}

	err := d.Add(Attachment{Name: "one-too-many.png"})
	require.Error(t, err, "excess files are rejected, never silently dropped")
	assert.Len(t, d.Added(), MaxAttachments)
}

func TestImageDraftCountCapIncludesKeptImages(t *testing.T) {
	existing := make(models.ImageList, MaxAttachments-1)
	for i := range existing {
		existing[i] = models.Image{ID: int64(i + 1), URL: "https://img/x"}
	}
	d := NewImageDraft(existing)

	require.NoError(t, d.Add(Attachment{Name: "last-slot.png"}))
	assert.Error(t, d.Add(Attachment{Name: "overflow.png"}))

	// Removing an existing image frees a slot.
	d.Remove(1)
	assert.NoError(t, d.Add(Attachment{Name: "fits-now.png"}))
}

func TestImageDraftStageFileOncePerPath(t *testing.T) {
	path := writeTempImage(t, "bow.png", 32)
	d := NewImageDraft(nil)

	require.NoError(t, d.StageFile(path))
	// A failed submit leaves the form open; the retry stages the same path.
	require.NoError(t, d.StageFile(path))
	assert.Len(t, d.Added(), 1, "re-staging the same file must not duplicate the upload")

	other := writeTempImage(t, "stern.png", 32)
	require.NoError(t, d.StageFile(other))
	assert.Len(t, d.Added(), 2)

	require.NoError(t, d.StageFile(""))
	assert.Len(t, d.Added(), 2)
}

func TestImageDraftRemoveDiffing(t *testing.T) {
	existing := models.ImageList{
		{ID: 1, URL: "https://img/1"},
		{ID: 2, URL: "https://img/2"},
		{URL: "https://img/legacy"}, // legacy wire shape, no id
	}
	d := NewImageDraft(existing)
	require.NoError(t, d.Add(Attachment{Name: "new.png", DataURI: "data:image/png;base64,AA=="}))

	d.Remove(2)
	d.Remove(0) // no-op: legacy images cannot be removed by id

	kept := d.Kept()
	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].ID)

	uris, removeIDs := d.Payload()
	assert.Equal(t, []string{"data:image/png;base64,AA=="}, uris)
	assert.Equal(t, []int64{2}, removeIDs)
}
