package reliefweb

// Filter narrows a query to matching records. Either a single field/value
// condition or a boolean combination of such conditions:
//
//	Filter{Field: "status", Value: []string{"alert", "ongoing"}}
//	Filter{Operator: "AND", Conditions: []Filter{...}}
type Filter struct {
	Field      string   `json:"field,omitempty"`
	Value      any      `json:"value,omitempty"`
	Operator   string   `json:"operator,omitempty"`
	Conditions []Filter `json:"conditions,omitempty"`
}

// And combines conditions with a boolean AND.
func And(conditions ...Filter) *Filter {
	return &Filter{Operator: "AND", Conditions: conditions}
}

// Request is the JSON body of a query: filter, profile selector, sort order
// and result limit. The engine always asks for the full profile.
type Request struct {
	Filter  *Filter  `json:"filter,omitempty"`
	Profile string   `json:"profile,omitempty"`
	Sort    []string `json:"sort,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}
