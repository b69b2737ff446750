package model

import (
	json "github.com/goccy/go-json"
)

// Page is one record fetched from a Notion database. The wire bytes are
// retained so pass-through endpoints return the full object untouched,
// including fields this struct does not model.
type Page struct {
	Object         string              `json:"object,omitempty"`
	ID             string              `json:"id"`
	URL            string              `json:"url,omitempty"`
	CreatedTime    string              `json:"created_time,omitempty"`
	LastEditedTime string              `json:"last_edited_time,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`

	raw json.RawMessage
}

type pageAlias Page

func (p *Page) UnmarshalJSON(data []byte) error {
	var a pageAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Page(a)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Page) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return p.raw, nil
	}
	return json.Marshal(pageAlias(p))
}

// Database is the schema of a Notion database.
type Database struct {
	ID         string                      `json:"id"`
	Title      []RichText                  `json:"title"`
	Properties map[string]DatabaseProperty `json:"properties"`
}

// DatabaseProperty is one column definition in a database schema.
type DatabaseProperty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Name returns the database title, or "Untitled" when none is set.
func (d Database) Name() string {
	if len(d.Title) == 0 {
		return "Untitled"
	}
	if d.Title[0].Text != nil {
		return d.Title[0].Text.Content
	}
	return d.Title[0].PlainText
}

// PropertyTypes maps each property name to its declared kind.
func (d Database) PropertyTypes() map[string]string {
	types := make(map[string]string, len(d.Properties))
	for name, prop := range d.Properties {
		types[name] = prop.Type
	}
	return types
}
