// Package textsize estimates pixel dimensions for markdown-formatted node
// text.
//
// The estimator is a deterministic heuristic, not a text shaper: it counts
// visible characters per line, applies fixed per-line heights and width
// multipliers by line class, and approximates reflow of over-wide lines
// with a damped correction factor. The constants below are part of the
// interchange contract - diagrams produced with different constants would
// not match reference fixtures, so they must not be tuned independently.
package textsize

import (
	"regexp"
	"strings"
)

// Rendering constants, calibrated against canvas viewers.
const (
	// CharWidth is the assumed average character width in pixels.
	CharWidth = 8
	// LineHeight is the height of a regular text line.
	LineHeight = 24
	// HeaderLineHeight is the base height of a heading line.
	HeaderLineHeight = 32
	// CodeLineHeight is the height of a code or inline-code line.
	CodeLineHeight = 22
	// PaddingX is the horizontal node padding applied on each side.
	PaddingX = 24
	// PaddingY is the vertical node padding applied on each side.
	PaddingY = 20
	// MinWidth and MinHeight are the smallest node dimensions produced.
	MinWidth  = 150
	MinHeight = 50
	// MaxWidth caps node width; wider content wraps instead.
	MaxWidth = 500
)

// wrapDamping tames the wrap height inflation so long single lines do not
// blow up node heights. 1.0 would assume perfect word wrap.
const wrapDamping = 0.8

var (
	headerRe     = regexp.MustCompile(`^#{1,6}\s*`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	underBoldRe  = regexp.MustCompile(`__(.+?)__`)
	italicRe     = regexp.MustCompile(`\*(.+?)\*`)
	underlineRe  = regexp.MustCompile(`_(.+?)_`)
	inlineCodeRe = regexp.MustCompile("`(.+?)`")
	linkRe       = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
)

// Measure estimates the (width, height) needed to display text inside a
// node, in abstract pixels. Width is clamped to [minWidth, maxWidth];
// height never drops below minHeight. Empty text yields the minimums.
func Measure(text string, minWidth, maxWidth, minHeight int) (int, int) {
	if text == "" {
		return minWidth, minHeight
	}

	totalHeight := PaddingY * 2
	maxLineWidth := 0

	for _, line := range splitLines(text) {
		w, h := lineDimensions(line)
		if w > maxLineWidth {
			maxLineWidth = w
		}
		totalHeight += h
	}

	width := maxLineWidth + PaddingX*2
	width = max(minWidth, min(maxWidth, width))

	// Over-wide lines wrap; approximate the extra height linearly with
	// damping instead of measuring actual wrapped lines.
	if contentWidth := maxWidth - PaddingX*2; maxLineWidth > contentWidth {
		wrapFactor := float64(maxLineWidth) / float64(contentWidth)
		totalHeight = int(float64(totalHeight) * wrapFactor * wrapDamping)
	}

	height := max(minHeight, totalHeight)
	return width, height
}

// ForNode estimates dimensions for a node of the given semantic category.
// baseWidth/baseHeight act as minimums; width may grow up to twice the
// base (or MaxWidth, whichever is larger). Category adjustments:
//
//   - "group": extra height for the label band
//   - "decision": enforced wider minimum
//   - "start", "end": clamped into a compact band
func ForNode(text, category string, baseWidth, baseHeight int) (int, int) {
	w, h := Measure(text, baseWidth, max(baseWidth*2, MaxWidth), baseHeight)

	switch category {
	case "group":
		h += 30
	case "decision":
		w = max(w, 220)
	case "start", "end":
		w = max(min(w, 250), 180)
	}
	return w, h
}

// WrappedHeight estimates the height of text constrained to a fixed
// available width, counting whole wrapped lines per input line. Used by
// callers that decide width first and let height follow.
func WrappedHeight(text string, availableWidth int) int {
	if text == "" {
		return MinHeight
	}

	totalHeight := PaddingY * 2
	contentWidth := availableWidth - PaddingX*2

	for _, line := range splitLines(text) {
		lineWidth := visibleLen(line) * CharWidth

		lineHeight := LineHeight
		if len(line) > 0 && line[0] == '#' {
			lineHeight = HeaderLineHeight
		}

		if lineWidth > contentWidth && contentWidth > 0 {
			totalHeight += lineHeight * (lineWidth/contentWidth + 1)
		} else {
			totalHeight += lineHeight
		}
	}

	return max(MinHeight, totalHeight)
}

// lineDimensions classifies a single line and returns its (width, height).
func lineDimensions(line string) (int, int) {
	width := visibleLen(line) * CharWidth

	switch {
	case strings.HasPrefix(line, "###"):
		return width * 11 / 10, HeaderLineHeight + 4
	case strings.HasPrefix(line, "##"):
		return width * 12 / 10, HeaderLineHeight + 8
	case strings.HasPrefix(line, "#"):
		return width * 13 / 10, HeaderLineHeight + 12
	case strings.HasPrefix(line, "```"), strings.HasPrefix(line, "`"):
		return width * 9 / 10, CodeLineHeight
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "• "):
		return width + 16, LineHeight
	case strings.TrimSpace(line) == "":
		return width, LineHeight / 2
	default:
		return width, LineHeight
	}
}

// visibleLen returns the character count of a line with markup stripped.
func visibleLen(line string) int {
	return len([]rune(StripMarkdown(line)))
}

// StripMarkdown removes heading markers, emphasis, inline code spans and
// link syntax, leaving the visually rendered text.
func StripMarkdown(text string) string {
	text = headerRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = underBoldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = underlineRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	return text
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
