package model

import "encoding/json"

// Snippet is the normalized record produced by the importer: one legacy
// active string reconstructed as trigger text plus insertion body.
// It carries a superset of the fields needed by every target format.
type Snippet struct {
	Trigger     string `json:"trigger"`
	Body        Body   `json:"body"`
	Mode        Mode   `json:"mode"`
	Description string `json:"description"`
}

// Multiline reports whether the body is a Block.
func (s Snippet) Multiline() bool {
	_, ok := s.Body.(Block)
	return ok
}

// WithBody returns a copy of the snippet with the body replaced.
func (s Snippet) WithBody(b Body) Snippet {
	s.Body = b
	return s
}

// WithMode returns a copy of the snippet with the mode replaced.
func (s Snippet) WithMode(m Mode) Snippet {
	s.Mode = m
	return s
}

// snippetJSON mirrors Snippet with a raw body for two-variant decoding.
type snippetJSON struct {
	Trigger     string          `json:"trigger"`
	Body        json.RawMessage `json:"body"`
	Mode        Mode            `json:"mode"`
	Description string          `json:"description"`
}

// UnmarshalJSON decodes a snippet, resolving the body union by shape.
func (s *Snippet) UnmarshalJSON(data []byte) error {
	var raw snippetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	body, err := UnmarshalBody(raw.Body)
	if err != nil {
		return err
	}
	s.Trigger = raw.Trigger
	s.Body = body
	s.Mode = raw.Mode
	s.Description = raw.Description
	return nil
}
