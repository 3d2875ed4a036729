package workspace

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"farmlot/pkg/imageutil"
	"farmlot/services/admin/internal/entity"
)

const (
	// MaxPhotos caps the staged sequence for one listing.
	MaxPhotos = 5
	// MaxFileSize caps one uploaded file (5MB).
	MaxFileSize = 5 << 20
)

var (
	ErrTooManyPhotos   = fmt.Errorf("a listing can have at most %d photos", MaxPhotos)
	ErrIndexOutOfRange = errors.New("photo index out of range")
	ErrPendingPhoto    = errors.New("workspace still holds photos that were not uploaded")
)

// Uploader is the storage collaborator used during Reconcile.
type Uploader interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
}

// StagedPhoto is one entry of the editing sequence. A photo is either
// already persisted (Existing, durable URL) or pending (raw bytes held
// until Reconcile uploads them).
type StagedPhoto struct {
	URL      string
	IsMain   bool
	Existing bool

	data        []byte
	filename    string
	contentType string
}

// PhotoState is the JSON snapshot of one staged photo handed to clients.
type PhotoState struct {
	URL      string `json:"url"`
	IsMain   bool   `json:"is_main"`
	Existing bool   `json:"existing"`
	Filename string `json:"filename,omitempty"`
}

// Workspace stages the photo set for one listing being edited. It enforces
// the single-main invariant after every mutation: a non-empty sequence has
// exactly one main photo.
type Workspace struct {
	photos []StagedPhoto
}

func New() *Workspace {
	return &Workspace{}
}

// Initialize resets the workspace to the listing's persisted photos. A nil
// or empty slice leaves the workspace empty.
func (w *Workspace) Initialize(existing []entity.ListingPhoto) {
	w.photos = w.photos[:0]
	for _, p := range existing {
		w.photos = append(w.photos, StagedPhoto{
			URL:      p.URL,
			IsMain:   p.IsMain,
			Existing: true,
		})
	}
}

// AddFiles stages a batch of uploaded files. If the batch would push the
// sequence past MaxPhotos the whole batch is rejected with
// ErrTooManyPhotos and the workspace is left unchanged. Individual files
// that are oversized or not images are skipped with a user-facing message
// while the rest of the batch is processed. The first photo to land in an
// empty workspace becomes main.
func (w *Workspace) AddFiles(files []*multipart.FileHeader) ([]string, error) {
	if len(w.photos)+len(files) > MaxPhotos {
		return nil, ErrTooManyPhotos
	}

	var skipped []string
	for _, fh := range files {
		if fh.Size > MaxFileSize {
			skipped = append(skipped, fmt.Sprintf("%s is too large, maximum size is 5MB", fh.Filename))
			continue
		}

		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			skipped = append(skipped, fmt.Sprintf("%s is not an image file", fh.Filename))
			continue
		}

		src, err := fh.Open()
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s could not be read", fh.Filename))
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s could not be read", fh.Filename))
			continue
		}

		w.photos = append(w.photos, StagedPhoto{
			IsMain:      len(w.photos) == 0,
			data:        data,
			filename:    fh.Filename,
			contentType: contentType,
		})
	}

	return skipped, nil
}

// SetMain designates the photo at index as the listing's main photo and
// clears the flag everywhere else. An invalid index fails loudly.
func (w *Workspace) SetMain(index int) error {
	if index < 0 || index >= len(w.photos) {
		return ErrIndexOutOfRange
	}
	for i := range w.photos {
		w.photos[i].IsMain = i == index
	}
	return nil
}

// Remove drops the photo at index and releases its buffered bytes. If the
// removed photo was main and photos remain, the new first element is
// promoted.
func (w *Workspace) Remove(index int) error {
	if index < 0 || index >= len(w.photos) {
		return ErrIndexOutOfRange
	}

	w.photos[index].data = nil
	w.photos = append(w.photos[:index], w.photos[index+1:]...)

	if len(w.photos) > 0 && !w.hasMain() {
		w.photos[0].IsMain = true
	}
	return nil
}

func (w *Workspace) hasMain() bool {
	for _, p := range w.photos {
		if p.IsMain {
			return true
		}
	}
	return false
}

// Reconcile uploads every pending photo, one at a time, in sequence order:
// resize to a 1200px longest edge, re-encode as JPEG, upload under a
// collision-resistant key, then swap the staged entry to its durable URL.
// The first failure aborts; photos uploaded before it are kept as-is and
// not rolled back. Calling Reconcile with no pending photos is a no-op.
func (w *Workspace) Reconcile(uploader Uploader) error {
	for i := range w.photos {
		if w.photos[i].Existing {
			continue
		}

		resized, err := imageutil.ResizeJPEG(w.photos[i].data, imageutil.MaxEdge)
		if err != nil {
			return fmt.Errorf("failed to process photo %s: %w", w.photos[i].filename, err)
		}

		key := objectKey(w.photos[i].filename)
		url, err := uploader.UploadFile(key, bytes.NewReader(resized), "image/jpeg")
		if err != nil {
			return fmt.Errorf("failed to upload photo %s: %w", w.photos[i].filename, err)
		}

		w.photos[i].URL = url
		w.photos[i].Existing = true
		w.photos[i].data = nil
	}
	return nil
}

// Photos projects the staged sequence into persistable records, order
// taken from the current position. It refuses to run while any photo is
// still pending upload.
func (w *Workspace) Photos() ([]entity.ListingPhoto, error) {
	photos := make([]entity.ListingPhoto, len(w.photos))
	for i, p := range w.photos {
		if !p.Existing {
			return nil, ErrPendingPhoto
		}
		photos[i] = entity.ListingPhoto{
			URL:    p.URL,
			IsMain: p.IsMain,
			Order:  i,
		}
	}
	return photos, nil
}

// Snapshot reports the staged sequence for rendering.
func (w *Workspace) Snapshot() []PhotoState {
	states := make([]PhotoState, len(w.photos))
	for i, p := range w.photos {
		states[i] = PhotoState{
			URL:      p.URL,
			IsMain:   p.IsMain,
			Existing: p.Existing,
			Filename: p.filename,
		}
	}
	return states
}

func (w *Workspace) Count() int {
	return len(w.photos)
}

// Release drops all staged state, including buffered pending bytes. Used
// when the editor is closed or cancelled.
func (w *Workspace) Release() {
	for i := range w.photos {
		w.photos[i].data = nil
	}
	w.photos = nil
}

// objectKey builds a collision-resistant storage key: millisecond
// timestamp plus a short random token, keeping the original extension.
func objectKey(filename string) string {
	token := make([]byte, 3)
	rand.Read(token)
	ext := path.Ext(filename)
	return fmt.Sprintf("listings/%d_%s%s", time.Now().UnixMilli(), hex.EncodeToString(token), ext)
}
