// Package inventory groups database records by item name and renders a
// QR code per unique item.
package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/khoward/notionbridge/internal/model"
)

const (
	itemProperty     = "Item"
	quantityProperty = "Quantity"
)

// MissingTitleError reports a page without a usable Item title. It is
// fatal to that page only; batch processing skips it and continues.
type MissingTitleError struct {
	PageID string
}

func (e *MissingTitleError) Error() string {
	return fmt.Sprintf("page %s has no Item title property", e.PageID)
}

// ItemGroup collapses pages sharing an item name. TotalQuantity is a
// best-effort aggregate: each member contributes its parsed Quantity, or
// exactly 1 when none can be parsed.
type ItemGroup struct {
	Name          string
	Members       []model.Page
	TotalQuantity int
}

// ExtractItemName returns the page's Item title. The property must be of
// kind title and carry at least one fragment.
func ExtractItemName(page model.Page) (string, error) {
	prop, ok := page.Properties[itemProperty]
	if !ok || prop.Type != model.PropertyTitle || len(prop.Title) == 0 {
		return "", &MissingTitleError{PageID: page.ID}
	}

	fragment := prop.Title[0]
	if fragment.Text != nil && fragment.Text.Content != "" {
		return fragment.Text.Content, nil
	}
	return fragment.PlainText, nil
}

// ParseQuantity reads the Quantity rich_text property as an integer. The
// second return reports whether a parseable quantity exists; callers
// fall back to counting the record as one instance when it does not.
func ParseQuantity(page model.Page) (int, bool) {
	prop, ok := page.Properties[quantityProperty]
	if !ok || prop.Type != model.PropertyRichText || len(prop.RichText) == 0 {
		return 0, false
	}

	text := prop.RichText[0].PlainText
	if prop.RichText[0].Text != nil {
		text = prop.RichText[0].Text.Content
	}

	qty, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return qty, true
}

// GroupByName clusters pages by their raw extracted item name. No
// normalization is applied: names differing in case or whitespace form
// distinct groups. Pages without a usable title are logged and skipped.
func GroupByName(pages []model.Page, log *zap.SugaredLogger) map[string]*ItemGroup {
	groups := make(map[string]*ItemGroup)

	for _, page := range pages {
		name, err := ExtractItemName(page)
		if err != nil {
			if log != nil {
				log.Warnw("Skipping item", "page_id", page.ID, "error", err)
			}
			continue
		}

		group, ok := groups[name]
		if !ok {
			group = &ItemGroup{Name: name}
			groups[name] = group
		}
		group.Members = append(group.Members, page)

		if qty, ok := ParseQuantity(page); ok {
			group.TotalQuantity += qty
		} else {
			group.TotalQuantity++
		}
	}

	return groups
}
