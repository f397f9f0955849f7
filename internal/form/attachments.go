package form

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/costamaya/backoffice/internal/models"
)

// Upload limits. Files over the size cap and additions past the count cap
// are rejected with an error; nothing is silently truncated.
const (
	MaxAttachmentBytes = 5 << 20 // 5 MiB per file
	MaxAttachments     = 8
)

// Attachment is a staged image upload, already converted to the data URI
// form the backend accepts in create/update payloads.
type Attachment struct {
	Name    string
	DataURI string
	Size    int64
}

// EncodeFile reads an image file and stages it as an Attachment.
func EncodeFile(path string) (Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > MaxAttachmentBytes {
		return Attachment{}, fmt.Errorf("%s is %d bytes, over the %d byte limit", filepath.Base(path), info.Size(), MaxAttachmentBytes)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("reading %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return Attachment{
		Name:    filepath.Base(path),
		DataURI: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(raw)),
		Size:    info.Size(),
	}, nil
}

// ImageDraft stages the image changes of one form session: the entity's
// existing server-side images (kept for diffing, so "delete this specific
// image" works by id), the ids marked for removal, and new uploads.
type ImageDraft struct {
	existing models.ImageList
	removed  map[int64]bool
	added    []Attachment
	staged   map[string]bool
}

// NewImageDraft copies an entity's images into a fresh draft. Pass nil for
// create mode.
func NewImageDraft(existing models.ImageList) *ImageDraft {
	return &ImageDraft{
		existing: append(models.ImageList(nil), existing...),
		removed:  map[int64]bool{},
		staged:   map[string]bool{},
	}
}

// StageFile encodes the file at path and stages it as an upload. A path
// already staged in this session is skipped, so re-running a submit after an
// API failure does not duplicate the upload. An empty path is a no-op.
func (d *ImageDraft) StageFile(path string) error {
	if path == "" || d.staged[path] {
		return nil
	}
	a, err := EncodeFile(path)
	if err != nil {
		return err
	}
	if err := d.Add(a); err != nil {
		return err
	}
	d.staged[path] = true
	return nil
}

// Add stages a new upload. Fails once the combined kept-plus-added count
// would exceed MaxAttachments.
func (d *ImageDraft) Add(a Attachment) error {
	if len(d.Kept())+len(d.added)+1 > MaxAttachments {
		return fmt.Errorf("at most %d images per entity", MaxAttachments)
	}
	d.added = append(d.added, a)
	return nil
}

// Remove marks an existing server-side image for deletion. Images from the
// legacy string wire shape have no id and cannot be removed individually.
func (d *ImageDraft) Remove(id int64) {
	if id != 0 {
		d.removed[id] = true
	}
}

// Kept returns the existing images not marked for removal.
func (d *ImageDraft) Kept() models.ImageList {
	kept := make(models.ImageList, 0, len(d.existing))
	for _, img := range d.existing {
		if !d.removed[img.ID] {
			kept = append(kept, img)
		}
	}
	return kept
}

// Added returns the staged uploads.
func (d *ImageDraft) Added() []Attachment { return d.added }

// Payload returns the pieces of the submit body: data URIs for new uploads
// and ids of existing images to drop.
func (d *ImageDraft) Payload() (dataURIs []string, removeIDs []int64) {
	for _, a := range d.added {
		dataURIs = append(dataURIs, a.DataURI)
	}
	for _, img := range d.existing {
		if d.removed[img.ID] {
			removeIDs = append(removeIDs, img.ID)
		}
	}
	return dataURIs, removeIDs
}
