package walkthrough

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/walkthrough/pkg/adapters/html"
	"github.com/aretw0/walkthrough/pkg/adapters/loam"
	"github.com/aretw0/walkthrough/pkg/adapters/manifest"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// OpenPage picks a page source from the path:
// a directory is a Loam repository of Markdown documents, .html/.htm is parsed as HTML,
// and .yaml/.yml/.json is read as a manifest. It also returns the page title when the source has one.
func OpenPage(ctx context.Context, path, markerPrefix, annotationKey string) (ports.Page, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page path: %w", err)
	}

	if info.IsDir() {
		page, err := loam.Open(ctx, path, loam.WithConvention(markerPrefix, annotationKey))
		if err != nil {
			return nil, "", err
		}
		return page, "", nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		page, err := html.Load(path)
		if err != nil {
			return nil, "", err
		}
		return page, page.Title, nil
	case ".yaml", ".yml", ".json":
		page, err := manifest.Load(path)
		if err != nil {
			return nil, "", err
		}
		return page, page.Name, nil
	default:
		return nil, "", fmt.Errorf("unsupported page format %q", ext)
	}
}
