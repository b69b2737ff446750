package inventory

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/khoward/notionbridge/internal/model"
)

const (
	pageBaseURL = "https://www.notion.so/"

	// Version-1 matrix at 10px per module, error correction H.
	qrImageSize     = 410
	qrRecoveryLevel = qrcode.Highest

	imageExt = ".png"
)

// Renderer writes QR code images into OutputDir. Filenames carry the
// sanitized item name and the current date; same-day collisions between
// identically sanitized names silently overwrite.
type Renderer struct {
	OutputDir string
}

// PageURL builds the public workspace URL for a page id, with the
// hyphen separators stripped.
func PageURL(pageID string) string {
	return pageBaseURL + strings.ReplaceAll(pageID, "-", "")
}

// SafeFilename keeps letters, digits, spaces, hyphens and underscores,
// then trims trailing spaces.
func SafeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render encodes the page's URL into a QR image named after the item and
// returns the written path.
func (r *Renderer) Render(page model.Page, itemName string) (string, error) {
	filename := fmt.Sprintf("%s_%s%s", SafeFilename(itemName), time.Now().Format("20060102"), imageExt)
	path := filepath.Join(r.OutputDir, filename)

	if err := qrcode.WriteFile(PageURL(page.ID), qrRecoveryLevel, qrImageSize, path); err != nil {
		return "", fmt.Errorf("failed to write QR code for %q: %w", itemName, err)
	}

	return path, nil
}
