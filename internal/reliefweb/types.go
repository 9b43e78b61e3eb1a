package reliefweb

import "encoding/json"

// envelope is the wire shape of a query response: a list of records, each
// exposing its field set under "fields".
type envelope struct {
	Data []struct {
		Fields json.RawMessage `json:"fields"`
	} `json:"data"`
}

// Dates carries the timestamp block attached to both disasters and reports.
// Values are ISO-8601 strings exactly as sent by the remote source.
type Dates struct {
	Created  string `json:"created"`
	Changed  string `json:"changed"`
	Event    string `json:"event"`
	Original string `json:"original"`
}

// Format identifies a report's content kind (situation report, map, news, ...).
type Format struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DisasterFields is the field set of one disaster record. Structured values
// the engine never inspects (countries, hazard types) stay opaque as raw JSON.
type DisasterFields struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	Glide          string          `json:"glide"`
	URL            string          `json:"url"`
	URLAlias       string          `json:"url_alias"`
	Date           Dates           `json:"date"`
	PrimaryCountry json.RawMessage `json:"primary_country"`
	Country        json.RawMessage `json:"country"`
	PrimaryType    json.RawMessage `json:"primary_type"`
	RelatedGlide   json.RawMessage `json:"related_glide"`
}

// ReportFields is the field set of one report record. The record may embed a
// disaster reference of its own; reconciliation ignores it and always uses
// the owning disaster it is fetched for.
type ReportFields struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Body           string          `json:"body"`
	URL            string          `json:"url"`
	URLAlias       string          `json:"url_alias"`
	Status         string          `json:"status"`
	Date           Dates           `json:"date"`
	Language       json.RawMessage `json:"language"`
	Source         json.RawMessage `json:"source"`
	Theme          json.RawMessage `json:"theme"`
	File           json.RawMessage `json:"file"`
	PrimaryCountry json.RawMessage `json:"primary_country"`
	Country        json.RawMessage `json:"country"`
	Format         []Format        `json:"format"`
}
