// Package attachments mirrors report file attachments into S3-compatible
// object storage so the serving layer can read them without re-fetching from
// the remote CDN. Uploads are compute-if-absent and keyed deterministically,
// which keeps the mirror idempotent across sync cycles.
package attachments

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"

	"github.com/disasterpulse/datasync/internal/models"
)

// Attachment is one entry of a report's file list. Only the fields the
// mirror needs are decoded; everything else stays with the stored JSON.
type Attachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Preview  *struct {
		URL string `json:"url"`
	} `json:"preview,omitempty"`
}

// Parse decodes a report's stored file column into attachment descriptors.
// An empty column means no attachments.
func Parse(file models.JSONField) ([]Attachment, error) {
	if len(file) == 0 {
		return nil, nil
	}
	var atts []Attachment
	if err := json.Unmarshal(file, &atts); err != nil {
		return nil, fmt.Errorf("decoding attachment list: %w", err)
	}
	return atts, nil
}

// ObjectKey builds the deterministic storage key for one attachment of one
// report. Re-mirroring the same attachment always targets the same object.
func ObjectKey(reportID int64, a Attachment) string {
	name := a.Filename
	if name == "" {
		if u, err := url.Parse(a.URL); err == nil {
			name = path.Base(u.Path)
		}
	}
	if name == "" || name == "." || name == "/" {
		name = "attachment"
	}
	return fmt.Sprintf("reports/%d/%s", reportID, name)
}
