package model

import (
	json "github.com/goccy/go-json"
)

// Block is one content block of a page. Only the id and type are decoded
// eagerly; the kind-specific payload stays raw until asked for.
type Block struct {
	ID   string
	Type string

	fields map[string]json.RawMessage
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	b.fields = fields
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &b.ID); err != nil {
			return err
		}
	}
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &b.Type); err != nil {
			return err
		}
	}
	return nil
}

// RichTextRuns returns the rich_text runs of the block's kind payload,
// or nil when the kind carries none.
func (b Block) RichTextRuns() []RichText {
	payload, ok := b.fields[b.Type]
	if !ok {
		return nil
	}
	var body struct {
		RichText []RichText `json:"rich_text"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil
	}
	return body.RichText
}
