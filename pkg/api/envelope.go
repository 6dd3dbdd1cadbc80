package api

import (
	"encoding/json"
	"fmt"
)

// Page carries the pagination fields list endpoints attach to the envelope.
// Prev/next presence drives the Previous/Next controls.
type Page struct {
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	PrevPageURL *string `json:"prev_page_url"`
	NextPageURL *string `json:"next_page_url"`
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.PrevPageURL != nil && *p.PrevPageURL != "" }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.NextPageURL != nil && *p.NextPageURL != "" }

// Envelope is the platform's uniform response wrapper. The shape is the
// remote API's choice; beyond decoding, it is not validated.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Page
}

// DecodeData unmarshals the envelope payload into out. An absent payload
// leaves out untouched.
func (e *Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}

	return nil
}
