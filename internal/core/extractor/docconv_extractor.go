package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// DocconvExtractor extracts text from PDF bytes using docconv. The
// underlying pdftotext output separates pages with form feeds, which lets
// us hand back page-ordered spans: a page that yields no text contributes
// an empty span rather than failing the document.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ExtractPages converts raw PDF bytes to page-ordered text spans. Failure
// to open or convert the document fails the whole extraction; individual
// empty pages are kept as empty spans for the caller to drop.
func (e *DocconvExtractor) ExtractPages(ctx context.Context, raw []byte) ([]string, error) {
	res, err := docconv.Convert(bytes.NewReader(raw), "application/pdf", e.useReadability)
	if err != nil {
		return nil, fmt.Errorf("docconv: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if res.Body == "" {
		return nil, fmt.Errorf("docconv: extracted empty text")
	}

	return splitPages(res.Body), nil
}

// splitPages cuts pdftotext output into per-page spans on the form feed
// separator, trimming each span.
func splitPages(body string) []string {
	pages := strings.Split(body, "\f")
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
