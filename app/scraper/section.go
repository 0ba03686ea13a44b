package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSectionNotFound means the listing page did not contain the requested
// heading; no items can be produced from such a page.
var ErrSectionNotFound = errors.New("section not found")

var (
	// The rendering profile emits pagination controls as a bullet list
	// starting with this line. Nothing past it is content.
	paginationRe = regexp.MustCompile(`\n\* ←Previous page`)

	// Each ranked item is preceded by a marker line like "1. #1".
	blockMarkerRe = regexp.MustCompile(`(?m)^\d+\.\s+#\d+\s*$`)
)

// LocateSection returns the part of the rendered markdown beginning at the
// named section heading. An exact heading-level match is preferred; a bare
// substring match is accepted as a fallback. The section runs to the
// pagination block or end of document, whichever comes first.
func LocateSection(markdown, heading string) (string, error) {
	idx := strings.Index(markdown, "# "+heading)
	if idx == -1 {
		idx = strings.Index(markdown, heading)
	}
	if idx == -1 {
		return "", fmt.Errorf("%w: %q", ErrSectionNotFound, heading)
	}

	end := len(markdown)
	if m := paginationRe.FindStringIndex(markdown[idx:]); m != nil {
		end = idx + m[0]
	}

	return markdown[idx:end], nil
}

// SplitBlocks partitions section text into per-item line groups, preserving
// document order. Text preceding the first marker line is page furniture and
// is discarded. An empty result is not an error; it simply yields zero items.
func SplitBlocks(section string) []Block {
	parts := blockMarkerRe.Split(section, -1)
	if len(parts) < 2 {
		return nil
	}

	var blocks []Block
	for _, part := range parts[1:] {
		var lines Block
		for _, ln := range strings.Split(part, "\n") {
			ln = strings.TrimSpace(ln)
			if ln != "" {
				lines = append(lines, ln)
			}
		}
		if len(lines) > 0 {
			blocks = append(blocks, lines)
		}
	}

	return blocks
}
