package models

import (
	"time"

	"github.com/disasterpulse/datasync/internal/common"
	"github.com/disasterpulse/datasync/internal/reliefweb"
)

// Report mirrors one remote report record. Report ids are globally unique
// across all disasters, so the remote id alone is the merge key. The
// extracted-content cache columns belong to the serving layer and are not
// written during reconciliation.
type Report struct {
	ID                int64
	DisasterID        int64
	Title             string
	Body              string
	URL               string
	URLAlias          string
	Status            string
	DateCreated       *time.Time
	DateChanged       *time.Time
	DateOriginal      *time.Time
	Language          JSONField
	Source            JSONField
	Theme             JSONField
	File              JSONField
	PrimaryCountry    JSONField
	AffectedCountries JSONField
	ContentFormatID   *int64
	ContentFormatName string
}

// ReportFromFields maps a remote report field set onto a Report. The owning
// disaster is always the passed-in disasterID, never a value embedded in the
// payload. The content format pair comes from the first element of the
// record's format list when present.
func ReportFromFields(disasterID int64, f reliefweb.ReportFields) (*Report, error) {
	if f.ID == 0 {
		return nil, common.ErrMissingID
	}

	created, err := ParseDate(f.Date.Created)
	if err != nil {
		return nil, err
	}
	changed, err := ParseDate(f.Date.Changed)
	if err != nil {
		return nil, err
	}
	original, err := ParseDate(f.Date.Original)
	if err != nil {
		return nil, err
	}

	r := &Report{
		ID:                f.ID,
		DisasterID:        disasterID,
		Title:             f.Title,
		Body:              f.Body,
		URL:               f.URL,
		URLAlias:          f.URLAlias,
		Status:            f.Status,
		DateCreated:       created,
		DateChanged:       changed,
		DateOriginal:      original,
		Language:          JSONField(f.Language),
		Source:            JSONField(f.Source),
		Theme:             JSONField(f.Theme),
		File:              JSONField(f.File),
		PrimaryCountry:    JSONField(f.PrimaryCountry),
		AffectedCountries: JSONField(f.Country),
	}

	if len(f.Format) > 0 {
		id := f.Format[0].ID
		r.ContentFormatID = &id
		r.ContentFormatName = f.Format[0].Name
	}

	return r, nil
}
