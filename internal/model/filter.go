package model

// Filter is the structured predicate the language model service is expected
// to return for a natural language query. Value may be a number or a string
// depending on the attribute.
type Filter struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     any    `json:"value"`
}
