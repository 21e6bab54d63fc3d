// Package textutils provides the HTML/text normalization that turns a raw
// notification body into the clean text view every field extractor anchors
// on. Table-cell boundaries and line breaks survive as literal markers so
// "label in one cell, value in the next" patterns keep working after the
// markup is gone.
package textutils

import (
	"html"
	"io"
	"mime/quotedprintable"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// CellSeparator replaces <td>/<th> opening tags so column-position patterns
// can still anchor on cell boundaries.
const CellSeparator = " | "

var (
	qpHexRe       = regexp.MustCompile(`=[0-9A-F]{2}`)
	horizontalRe  = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n\s*\n`)
	spacedLinesRe = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// Normalize converts a raw HTML (or plain) body into clean text: transport
// encoding decoded, style/script blocks dropped, block-level structure turned
// into newlines, table cells into CellSeparator, entities decoded and
// whitespace collapsed. It never fails; on malformed input it returns the
// best text it could recover. Normalizing already-clean text is a no-op.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := DecodeQuotedPrintable(raw)
	text = stripMarkup(text)
	return CollapseWhitespace(text)
}

// DecodeQuotedPrintable decodes quoted-printable transport encoding when the
// input looks encoded (hex escapes like =3D, soft line breaks). Bodies that
// do not look encoded pass through untouched, since a bare '=' in normal
// text would otherwise be corrupted. Falls back to the original string on
// decode errors.
func DecodeQuotedPrintable(s string) string {
	if !looksQuotedPrintable(s) {
		return s
	}
	decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(s)))
	if err != nil {
		if len(decoded) > 0 {
			// Keep the partial decode; degraded input beats aborting.
			return string(decoded)
		}
		return s
	}
	return string(decoded)
}

func looksQuotedPrintable(s string) bool {
	if strings.Contains(s, "=3D") || strings.Contains(s, "=\r\n") ||
		strings.HasSuffix(s, "=") || strings.Contains(s, "=\n") {
		return true
	}
	// Several hex escapes in a row is a strong signal even without =3D.
	return len(qpHexRe.FindAllStringIndex(s, 3)) >= 3
}

// stripMarkup walks the token stream, dropping tags while preserving the
// structural hints extraction patterns need. The tokenizer is lenient with
// malformed markup and unescapes entities in text tokens, so plain text
// passes through unchanged.
func stripMarkup(text string) string {
	if !strings.ContainsRune(text, '<') {
		// No markup; entities may still need decoding. Decoded text decodes
		// to itself, which keeps normalization idempotent.
		return html.UnescapeString(text)
	}

	z := xhtml.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	skip := 0 // depth inside style/script blocks

	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			// io.EOF or unrecoverable markup; return what we have
			return b.String()
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "style", "script":
				skip++
			case "br":
				b.WriteByte('\n')
			case "td", "th":
				b.WriteString(CellSeparator)
			default:
				b.WriteByte(' ')
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "style", "script":
				if skip > 0 {
					skip--
				}
			case "p", "div", "tr", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte('\n')
			default:
				b.WriteByte(' ')
			}
		}
	}
}

// CollapseWhitespace squeezes runs of horizontal whitespace to one space and
// runs of blank lines to a single newline, then trims the ends.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = horizontalRe.ReplaceAllString(s, " ")
	s = spacedLinesRe.ReplaceAllString(s, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// LooksLikeCSS reports whether a plain-text body is really a stylesheet
// artifact, which some banks ship as the text/plain alternative. Such bodies
// are useless for extraction and the HTML part should be used instead.
func LooksLikeCSS(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "@media") || strings.HasPrefix(trimmed, "@import")
}
