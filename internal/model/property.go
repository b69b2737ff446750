package model

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Property kinds with dedicated payload decoding. Anything else is kept
// as the raw wire payload and passed through untouched.
const (
	PropertyTitle       = "title"
	PropertyRichText    = "rich_text"
	PropertyMultiSelect = "multi_select"
	PropertyNumber      = "number"
	PropertySelect      = "select"
)

// RichText is one text fragment of a title or rich_text property.
type RichText struct {
	Type        string          `json:"type,omitempty"`
	Text        *TextContent    `json:"text,omitempty"`
	Annotations json.RawMessage `json:"annotations,omitempty"`
	PlainText   string          `json:"plain_text"`
	Href        *string         `json:"href,omitempty"`
}

// TextContent is the editable content of a text fragment.
type TextContent struct {
	Content string          `json:"content"`
	Link    json.RawMessage `json:"link,omitempty"`
}

// SelectOption is one option of a select or multi_select property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Property is one typed entry in a page's property bag. Known kinds
// decode into their own fields; the original wire bytes are retained so
// endpoints that return unflattened properties re-emit them verbatim.
type Property struct {
	ID          string         `json:"id,omitempty"`
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`

	raw json.RawMessage
}

// propertyAlias avoids recursing into the custom codec.
type propertyAlias Property

func (p *Property) UnmarshalJSON(data []byte) error {
	var a propertyAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Property(a)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Property) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return p.raw, nil
	}
	return json.Marshal(propertyAlias(p))
}

// Payload returns the raw payload stored under the property's kind key,
// or nil when the property was not decoded from the wire.
func (p Property) Payload() json.RawMessage {
	if p.raw == nil {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(p.raw, &fields); err != nil {
		return nil
	}
	return fields[p.Type]
}

// PlainText concatenates the plain_text of every fragment, preserving
// source order. An empty fragment list yields the empty string.
func PlainText(fragments []RichText) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.PlainText)
	}
	return b.String()
}
