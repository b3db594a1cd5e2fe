// Package goquery implements nanodocs.Parser on top of goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nanodocs"
	"golang.org/x/net/html"
)

// Ensure Parser implements nanodocs.Parser at compile time.
var _ nanodocs.Parser = (*Parser)(nil)

// highlightSelector matches syntax-highlighted code containers. They hold
// example requests and responses that must not leak into descriptions.
// "codehilite" is the classic MkDocs marker, "highlight" the Material one.
const highlightSelector = "div.codehilite, div.highlight"

// admonitionClass marks callout blocks (notes, warnings) in MkDocs pages.
const admonitionClass = "admonition"

// defaultFieldLabel labels admonitions that carry no kind class.
const defaultFieldLabel = "NOTE"

var spaceRunRe = regexp.MustCompile(` {2,}`)

// Parser extracts entries from MkDocs listing pages where each entry starts
// with a heading whose id is the entry name.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a listing page and returns one entry per identified heading at
// the source's heading level.
func (p *Parser) Parse(htmlDoc string, source nanodocs.Source) (*nanodocs.EntrySet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return nanodocs.NewEntrySet(source.Category, nil), nanodocs.Errorf(nanodocs.EPARSE, "failed to parse HTML: %v", err)
	}

	doc.Find(highlightSelector).Remove()

	// Order matters: markup nested inside bold text is flattened with it.
	wrapText(doc.Find("strong"), "**")
	wrapText(doc.Find("em"), "*")
	wrapText(doc.Find("code"), "`")

	tag := source.HeadingTag()
	headings := doc.Find(tag)
	if headings.Length() == 0 {
		return nanodocs.NewEntrySet(source.Category, nil), nanodocs.Errorf(nanodocs.EPARSE, "no %s headings found at %s", tag, source.URL)
	}

	var entries []*nanodocs.Entry
	headings.Each(func(_ int, h *goquery.Selection) {
		id, ok := h.Attr("id")
		if !ok || id == "" {
			return
		}
		entries = append(entries, parseEntry(h, id, tag, source))
	})

	return nanodocs.NewEntrySet(source.Category, entries), nil
}

// parseEntry collects the description and fields that follow a heading.
func parseEntry(h *goquery.Selection, id, tag string, source nanodocs.Source) *nanodocs.Entry {
	var descr strings.Builder
	var fields []nanodocs.Field

	for sib := h.Next(); sib.Length() > 0 && !sib.Is(tag); sib = sib.Next() {
		text := sib.Text()
		if startsBoldRun(text) {
			break
		}

		if classes := classList(sib); hasClass(classes, admonitionClass) {
			fields = append(fields, nanodocs.Field{
				Label: admonitionLabel(classes),
				Value: collapseSpaces(strings.TrimSpace(text)),
			})
			continue
		}

		descr.WriteString(collapseSpaces(strings.TrimSpace(text)))
		descr.WriteString("\n")
	}

	return &nanodocs.Entry{
		Key:         source.EntryKey(id),
		Title:       id,
		Description: strings.TrimRight(descr.String(), "\n\r"),
		Fields:      fields,
		SourceURL:   source.Anchor(id),
	}
}

// startsBoldRun reports whether a sibling's raw text opens with a bold
// marker. Upstream pages put bolded sub-headings ("**Request:**",
// "**Optional**") after the prose of an entry; the first one ends the entry.
func startsBoldRun(text string) bool {
	return strings.HasPrefix(text, "**")
}

// wrapText replaces every selected element with a text node holding its text
// between markers.
func wrapText(sel *goquery.Selection, marker string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(&html.Node{
			Type: html.TextNode,
			Data: marker + s.Text() + marker,
		})
	})
}

func classList(s *goquery.Selection) []string {
	class, ok := s.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}

// admonitionLabel returns the second class token upper-cased, as in
// class="admonition warning".
func admonitionLabel(classes []string) string {
	if len(classes) < 2 {
		return defaultFieldLabel
	}
	return strings.ToUpper(classes[1])
}

func collapseSpaces(s string) string {
	return spaceRunRe.ReplaceAllString(s, " ")
}
