// Package chunker segments normalized textbook text into retrieval-sized
// passages. It splits on paragraph boundaries first, tracks chapter and
// section headings so each passage carries structural context, and carries
// a short word overlap across hard splits. When a text has no detectable
// structure it falls back to fixed-stride character windows.
package chunker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mathsnap/ingest/internal/models"
)

const (
	// DefaultChunkSize is the soft target passage length in characters.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the character stride overlap used by the fallback.
	DefaultChunkOverlap = 200
	// DefaultMinChunkSize is the hard floor below which a passage is not useful.
	DefaultMinChunkSize = 300

	// headingMaxLen bounds how long a paragraph can be and still count as a heading.
	headingMaxLen = 100
	// overlapWords is how many trailing words seed the next passage after a split.
	overlapWords = 30

	defaultChapter = "Introduction"
)

var leadingNumberRe = regexp.MustCompile(`^\d+\.`)

// Config tunes the segmentation. Zero values take the defaults above;
// the fallback thresholds keep the empirically chosen originals (a run
// producing fewer than FallbackMinChunks passages out of text longer than
// FallbackSizeFactor times the chunk size is considered degenerate).
type Config struct {
	ChunkSize          int
	ChunkOverlap       int
	MinChunkSize       int
	FallbackMinChunks  int
	FallbackSizeFactor int
}

// Engine splits normalized text into ordered passages. It is stateless
// across calls: chunking the same input twice yields identical output.
type Engine struct {
	cfg Config
}

// New creates an Engine, filling config defaults and clamping the overlap
// below the chunk size so the fallback stride always advances.
func New(cfg Config) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 0
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = DefaultMinChunkSize
	}
	if cfg.FallbackMinChunks <= 0 {
		cfg.FallbackMinChunks = 5
	}
	if cfg.FallbackSizeFactor <= 0 {
		cfg.FallbackSizeFactor = 2
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 4
	}
	return &Engine{cfg: cfg}
}

// Chunk segments normalized text into passages for one book. Passages come
// back ordered by SequenceIndex with no gaps; except in fallback mode every
// passage is at least MinChunkSize characters long.
func (e *Engine) Chunk(normalized, book string) []models.Passage {
	var passages []models.Passage

	paragraphs := strings.Split(normalized, "\n\n")

	currentChunk := ""
	currentChapter := defaultChapter
	currentSection := ""
	chunkCount := 0

	flush := func(text string) {
		passages = append(passages, models.Passage{
			Text:          strings.TrimSpace(text),
			SequenceIndex: chunkCount,
			Chapter:       currentChapter,
			Section:       currentSection,
			Book:          book,
		})
		chunkCount++
	}

	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if e.isHeading(paragraph) {
			// A heading closes out the running chunk; its own text never
			// becomes chunk content, only a label for what follows.
			if runeLen(currentChunk) >= e.cfg.MinChunkSize {
				flush(currentChunk)
				currentChunk = ""
			}
			if strings.Contains(strings.ToLower(paragraph), "chapter") {
				currentChapter = paragraph
				currentSection = ""
			} else {
				currentSection = paragraph
			}
			continue
		}

		if runeLen(currentChunk)+runeLen(paragraph)+2 > e.cfg.ChunkSize {
			if runeLen(currentChunk) >= e.cfg.MinChunkSize {
				overlap := lastWords(currentChunk, overlapWords)
				flush(currentChunk)
				// Seed the next chunk with the tail of the previous one so a
				// query landing near the split still retrieves coherent context.
				currentChunk = overlap + "\n\n" + paragraph + "\n\n"
			} else {
				// Below the minimum the ceiling is soft: append anyway rather
				// than emit a too-small passage.
				currentChunk += paragraph + "\n\n"
			}
		} else {
			currentChunk += paragraph + "\n\n"
		}
	}

	if runeLen(strings.TrimSpace(currentChunk)) >= e.cfg.MinChunkSize {
		flush(currentChunk)
	}

	// Pathological inputs (no paragraph or heading structure at all) produce
	// almost nothing above; force-split by character count instead.
	if len(passages) < e.cfg.FallbackMinChunks && runeLen(normalized) > e.cfg.FallbackSizeFactor*e.cfg.ChunkSize {
		return e.strideChunk(normalized, book)
	}

	return passages
}

// strideChunk emits fixed windows of ChunkSize characters advancing by
// ChunkSize-ChunkOverlap. No semantic labels exist in this mode, so
// chapter/section are synthesized from the window index.
func (e *Engine) strideChunk(text, book string) []models.Passage {
	var passages []models.Passage
	runes := []rune(text)
	chunkCount := 0

	for i := 0; i < len(runes); i += e.cfg.ChunkSize - e.cfg.ChunkOverlap {
		end := i + e.cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[i:end])
		if end-i < e.cfg.MinChunkSize {
			continue
		}
		passages = append(passages, models.Passage{
			Text:          window,
			SequenceIndex: chunkCount,
			Chapter:       fmt.Sprintf("Section %d", chunkCount/10+1),
			Section:       fmt.Sprintf("Part %d", chunkCount%10+1),
			Book:          book,
		})
		chunkCount++
	}
	return passages
}

// isHeading reports whether a paragraph looks like a chapter or section
// heading. The rule set is deliberately simple and is known to misfire on
// short all-caps lines (e.g. exercise answers); it is kept as-is for
// behavioral compatibility with the corpus this pipeline was tuned on.
func (e *Engine) isHeading(paragraph string) bool {
	if runeLen(paragraph) >= headingMaxLen {
		return false
	}
	lower := strings.ToLower(paragraph)
	return strings.Contains(lower, "chapter") ||
		strings.Contains(lower, "section") ||
		isAllUpper(paragraph) ||
		leadingNumberRe.MatchString(paragraph)
}

// isAllUpper reports whether the string contains at least one cased rune
// and no lower-case ones.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

// lastWords returns the last n whitespace-separated words of s joined by
// single spaces.
func lastWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
