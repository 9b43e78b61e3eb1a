// Package models defines the persisted entities mirrored from the remote
// feed and the merge functions that map remote field sets onto them.
package models

import (
	"time"

	"github.com/disasterpulse/datasync/internal/common"
	"github.com/disasterpulse/datasync/internal/reliefweb"
)

// Disaster mirrors one remote disaster record. The remote-assigned id is the
// primary key and the merge key across sync cycles. The analysis columns on
// the disaster table belong to the serving layer and are not represented
// here, so reconciliation can never clobber them.
type Disaster struct {
	ID                int64
	Name              string
	Description       string
	Status            string
	Glide             string
	URL               string
	URLAlias          string
	DateCreated       *time.Time
	DateChanged       *time.Time
	DateEvent         *time.Time
	PrimaryCountry    JSONField
	AffectedCountries JSONField
	PrimaryType       JSONField
	RelatedGlide      JSONField
}

// DisasterFromFields maps a remote disaster field set onto a Disaster,
// field by field. A payload without an id is rejected with
// common.ErrMissingID; a malformed date fails the whole record.
func DisasterFromFields(f reliefweb.DisasterFields) (*Disaster, error) {
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
	event, err := ParseDate(f.Date.Event)
	if err != nil {
		return nil, err
	}

	return &Disaster{
		ID:                f.ID,
		Name:              f.Name,
		Description:       f.Description,
		Status:            f.Status,
		Glide:             f.Glide,
		URL:               f.URL,
		URLAlias:          f.URLAlias,
		DateCreated:       created,
		DateChanged:       changed,
		DateEvent:         event,
		PrimaryCountry:    JSONField(f.PrimaryCountry),
		AffectedCountries: JSONField(f.Country),
		PrimaryType:       JSONField(f.PrimaryType),
		RelatedGlide:      JSONField(f.RelatedGlide),
	}, nil
}
