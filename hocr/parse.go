package hocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/supagonava/ocrgrid/model"
)

// Parse reads an hOCR document
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	p := &parser{doc: &Document{}}
	p.walk(root)
	return p.doc, nil
}

// ParseString is Parse for an in-memory document
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	doc  *Document
	page *Page
	line *Line
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		classes := strings.Fields(attr(n, "class"))
		switch {
		case hasClass(classes, ClassPage):
			p.startPage(n)
			p.walkChildren(n)
			p.page, p.line = nil, nil
			return

		case hasLineClass(classes):
			p.startLine(n, classes)
			p.walkChildren(n)
			p.line = nil
			return

		case hasClass(classes, ClassWord):
			p.addWord(n)
			return
		}
	}
	p.walkChildren(n)
}

func (p *parser) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) startPage(n *html.Node) {
	props := parseTitle(attr(n, "title"))
	p.doc.Pages = append(p.doc.Pages, Page{ID: attr(n, "id"), Box: props.box, Image: props.image})
	p.page = &p.doc.Pages[len(p.doc.Pages)-1]
	p.line = nil
}

func (p *parser) startLine(n *html.Node, classes []string) {
	pg := p.currentPage()
	class := ClassLine
	for _, c := range classes {
		if lineClasses[c] {
			class = c
			break
		}
	}
	pg.Lines = append(pg.Lines, Line{ID: attr(n, "id"), Class: class, Box: parseTitle(attr(n, "title")).box})
	p.line = &pg.Lines[len(pg.Lines)-1]
}

func (p *parser) addWord(n *html.Node) {
	props := parseTitle(attr(n, "title"))
	word := Word{ID: attr(n, "id"), Text: textContent(n), Box: props.box, Confidence: props.confidence}

	line := p.line
	if line == nil {
		pg := p.currentPage()
		if len(pg.Lines) == 0 || pg.Lines[len(pg.Lines)-1].Class != "" {
			pg.Lines = append(pg.Lines, Line{})
		}
		line = &pg.Lines[len(pg.Lines)-1]
	}
	line.Words = append(line.Words, word)
}

// currentPage returns the open page, starting an implicit one for content
// outside any ocr_page
func (p *parser) currentPage() *Page {
	if p.page == nil {
		p.doc.Pages = append(p.doc.Pages, Page{})
		p.page = &p.doc.Pages[len(p.doc.Pages)-1]
	}
	return p.page
}

type properties struct {
	box        Box
	image      string
	confidence float64
}

// parseTitle reads the semicolon separated title properties, such as
// `bbox 10 20 110 40; x_wconf 96`. Malformed values are ignored.
func parseTitle(title string) properties {
	props := properties{confidence: -1}
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "bbox":
			if box, ok := parseBBox(fields[1:]); ok {
				props.box = Box{BBox: box, Valid: true}
			}
		case "x_wconf":
			if len(fields) == 2 {
				if c, err := strconv.ParseFloat(fields[1], 64); err == nil {
					props.confidence = c
				}
			}
		case "image":
			props.image = strings.Trim(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(prop), "image")), `"`)
		}
	}
	return props
}

func parseBBox(fields []string) (model.BBox, bool) {
	if len(fields) != 4 {
		return model.BBox{}, false
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return model.BBox{}, false
		}
		v[i] = n
	}
	return model.NewBBox(v[0], v[1], v[2], v[3]), true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}

func hasLineClass(classes []string) bool {
	for _, c := range classes {
		if lineClasses[c] {
			return true
		}
	}
	return false
}

// textContent returns the text of a node and its descendants, trimmed
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}
