package notion

import (
	"github.com/khoward/notionbridge/internal/model"
)

// FlattenedPage is a page whose property bag has been reduced to plain
// values.
type FlattenedPage struct {
	ID             string         `json:"id"`
	URL            string         `json:"url"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	Properties     map[string]any `json:"properties"`
}

// FlattenPage derives a FlattenedPage from a page. It is a pure function
// of the page's properties.
func FlattenPage(page model.Page) FlattenedPage {
	return FlattenedPage{
		ID:             page.ID,
		URL:            page.URL,
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
		Properties:     Flatten(page.Properties),
	}
}

// Flatten converts a typed property bag into a plain name-to-value
// mapping. Title and rich_text properties collapse to their concatenated
// plain text; every other kind passes its payload through under the same
// name.
func Flatten(properties map[string]model.Property) map[string]any {
	flat := make(map[string]any, len(properties))
	for name, prop := range properties {
		flat[name] = flattenProperty(prop)
	}
	return flat
}

func flattenProperty(p model.Property) any {
	switch p.Type {
	case model.PropertyTitle:
		return model.PlainText(p.Title)
	case model.PropertyRichText:
		return model.PlainText(p.RichText)
	case model.PropertyMultiSelect:
		return p.MultiSelect
	case model.PropertyNumber:
		if p.Number == nil {
			return nil
		}
		return *p.Number
	case model.PropertySelect:
		if p.Select == nil {
			return nil
		}
		return *p.Select
	default:
		return p.Payload()
	}
}
