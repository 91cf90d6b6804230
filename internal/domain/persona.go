package domain

// Persona is a fixed synthetic author identity. Personas are supplied by the
// caller at configuration time and are never mutated by the engine.
type Persona struct {
	Username        string   `json:"username"`
	Name            string   `json:"name"`
	Background      string   `json:"background"`
	Style           string   `json:"style"`
	Expertise       string   `json:"expertise"`
	Quirks          []string `json:"quirks"`
	PostingPatterns string   `json:"posting_patterns"`
}
