// Package normalizer cleans raw extracted text into a canonical form
// suitable for segmentation. The transform is a pure string function:
// same input, same output, no locale or time dependence.
package normalizer

import (
	"regexp"
	"strings"
)

var (
	urlRe       = regexp.MustCompile(`https?://\S+`)
	emailRe     = regexp.MustCompile(`\S+@\S+`)
	dblQuoteRe  = regexp.MustCompile("[“”„]")
	sglQuoteRe  = regexp.MustCompile("[‘’`]")
	dashRe      = regexp.MustCompile("[—–]")
	pageNumRe   = regexp.MustCompile(`^\s*\d+\s*$`)
	pageLabelRe = regexp.MustCompile(`^\s*Page \d+\s*$`)
	paraSplitRe = regexp.MustCompile(`\n\s*\n`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Normalize collapses whitespace inside paragraphs while keeping the blank
// lines between them, so downstream paragraph detection still works. It also
// drops bare page numbers and "Page N" footer lines, strips URLs and email
// addresses, and normalizes curly quotes and em/en dashes.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")

	s = urlRe.ReplaceAllString(s, "")
	s = emailRe.ReplaceAllString(s, "")
	s = dblQuoteRe.ReplaceAllString(s, `"`)
	s = sglQuoteRe.ReplaceAllString(s, "'")
	s = dashRe.ReplaceAllString(s, "-")

	paras := paraSplitRe.Split(s, -1)
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		var kept []string
		for _, line := range strings.Split(p, "\n") {
			if pageNumRe.MatchString(line) || pageLabelRe.MatchString(line) {
				continue
			}
			kept = append(kept, line)
		}
		joined := strings.TrimSpace(spaceRe.ReplaceAllString(strings.Join(kept, " "), " "))
		if joined != "" {
			out = append(out, joined)
		}
	}
	return strings.Join(out, "\n\n")
}
