// Package html reads a static HTML document as a tour page.
//
// Markers come from the class attribute and annotations from data-* attributes
// (without the "data-" prefix). Geometry is taken from data-rect="top,left,width,height"
// or, failing that, from the top/left/width/height declarations of the inline style.
package html

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const rectAttr = "data-rect"

// Page is a memory page built from an HTML document.
type Page struct {
	*memory.Page
	Title string
}

// Load reads and parses an HTML file.
func Load(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	page, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// Parse walks the document in order and keeps every element with an id, a class or a data attribute.
func Parse(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	page, err := memory.NewPage()
	if err != nil {
		return nil, err
	}
	out := &Page{Page: page}

	seq := 0
	seen := make(map[string]bool)
	var walkErr error
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Title && n.FirstChild != nil && out.Title == "" {
				out.Title = strings.TrimSpace(n.FirstChild.Data)
			}
			seq++
			if el, rect, ok, err := convert(n, seq); err != nil {
				walkErr = err
				return
			} else if ok {
				el.ID = uniqueID(seen, el.ID, n.Data+"-"+strconv.Itoa(seq))
				if err := page.Add(el, rect); err != nil {
					walkErr = err
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// uniqueID keeps id unless an earlier element already claimed it.
// Markup with repeated ids is common; targets are found by class, so the id only keys geometry.
func uniqueID(seen map[string]bool, id, fallback string) string {
	if seen[id] {
		id = fallback
	}
	for n := 2; seen[id]; n++ {
		id = fallback + "-" + strconv.Itoa(n)
	}
	seen[id] = true
	return id
}

func convert(n *html.Node, seq int) (domain.Element, domain.Rect, bool, error) {
	el := domain.Element{}
	var style, rectValue string
	relevant := false

	for _, a := range n.Attr {
		switch {
		case a.Key == "id":
			el.ID = a.Val
			relevant = true
		case a.Key == "class":
			el.Markers = append(el.Markers, strings.Fields(a.Val)...)
			relevant = relevant || len(el.Markers) > 0
		case a.Key == "style":
			style = a.Val
		case a.Key == rectAttr:
			rectValue = a.Val
			relevant = true
		case strings.HasPrefix(a.Key, "data-"):
			if el.Annotations == nil {
				el.Annotations = make(map[string]string)
			}
			el.Annotations[strings.TrimPrefix(a.Key, "data-")] = strings.TrimSpace(a.Val)
			relevant = true
		}
	}
	if !relevant {
		return domain.Element{}, domain.Rect{}, false, nil
	}
	if el.ID == "" {
		el.ID = n.Data + "-" + strconv.Itoa(seq)
	}

	var rect domain.Rect
	var err error
	switch {
	case rectValue != "":
		rect, err = domain.ParseRect(rectValue)
	case style != "":
		rect, err = parseStyleRect(style)
	}
	if err != nil {
		return domain.Element{}, domain.Rect{}, false, fmt.Errorf("element %s: %w", el.ID, err)
	}
	return el, rect, true, nil
}
