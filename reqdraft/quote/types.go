package quote

import (
	"io"
	"path/filepath"
	"strings"
)

// MaxFileBytes is the upload size ceiling: 50 MiB.
const MaxFileBytes = 50 << 20

// pdfExtension is the only accepted quote document type.
const pdfExtension = ".pdf"

// Quote is one uploaded quote document as the external store reports it.
type Quote struct {
	ID           string
	FileRef      string
	OriginalName string
	SizeBytes    int64
	// ItemServerIDs lists the server identities of the line items this quote
	// covers. Every element references a saved item; no element appears in
	// any other quote.
	ItemServerIDs []string
}

// Covers reports whether the quote references the given server identity.
func (q Quote) Covers(serverID string) bool {
	for _, id := range q.ItemServerIDs {
		if id == serverID {
			return true
		}
	}

	return false
}

// File is the staged upload payload: metadata the binder validates plus an
// opaque content reader handed to the store untouched.
type File struct {
	Name      string
	SizeBytes int64
	Content   io.Reader
}

// isPDF checks the file extension, case-insensitively. Content sniffing
// belongs to the store; the binder only enforces the cheap client-side gate.
func (f File) isPDF() bool {
	return strings.ToLower(filepath.Ext(f.Name)) == pdfExtension
}

// PendingUpload is a staged, validated upload descriptor produced by
// StageUpload and consumed by CommitUpload.
type PendingUpload struct {
	File          File
	ItemServerIDs []string
}
