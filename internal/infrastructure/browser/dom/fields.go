// Package dom reads form structure out of a page's HTML.
package dom

import (
	"fmt"
	"strings"

	"web-assistant/internal/domain/entity"

	"golang.org/x/net/html"
)

// FieldSelector matches the same elements, in the same order, as the
// fields returned by Parse.
const FieldSelector = "input, textarea, select"

var (
	skippedTags   = []string{"script", "style", "noscript", "svg", "template", "head"}
	unfillable    = []string{"hidden", "submit", "button", "reset", "image"}
	hiddenStyles  = []string{"display:none", "visibility:hidden"}
	labelledTypes = []string{"input", "textarea", "select"}
)

type Document struct {
	Forms  int
	Fields []entity.FieldDescriptor
}

// Snapshot keeps only the fillable fields.
func (d *Document) Snapshot() *entity.FormSnapshot {
	snap := &entity.FormSnapshot{Forms: d.Forms}
	for _, f := range d.Fields {
		if Fillable(f) {
			snap.Fields = append(snap.Fields, f)
		}
	}
	return snap
}

// Fillable reports whether discovery keeps the field.
func Fillable(f entity.FieldDescriptor) bool {
	return !isOneOf(f.Kind, unfillable...)
}

// Parse returns every form control of rawHTML in document order. Labels
// are resolved from a label with a matching for attribute, then an
// enclosing label, then a label that shares the control's parent.
func Parse(rawHTML string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	labels := make(map[string]string)
	collectLabels(root, labels)

	doc := &Document{}
	walk(root, false, func(n *html.Node, hidden bool) {
		switch n.Data {
		case "form":
			doc.Forms++
		case "input", "textarea", "select":
			doc.Fields = append(doc.Fields, describe(n, hidden, labels))
		}
	})
	return doc, nil
}

func walk(n *html.Node, hidden bool, visit func(*html.Node, bool)) {
	if n.Type == html.ElementNode {
		if isOneOf(n.Data, skippedTags...) {
			return
		}
		hidden = hidden || isHidden(n)
		visit(n, hidden)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, hidden, visit)
	}
}

func describe(n *html.Node, hidden bool, labels map[string]string) entity.FieldDescriptor {
	kind := n.Data
	if kind == "input" {
		kind = strings.ToLower(attr(n, "type"))
		if kind == "" {
			kind = "text"
		}
	}

	f := entity.FieldDescriptor{
		Kind:        kind,
		Name:        attr(n, "name"),
		ID:          attr(n, "id"),
		Placeholder: attr(n, "placeholder"),
		Visible:     !hidden && kind != "hidden",
	}

	switch n.Data {
	case "textarea":
		f.CurrentValue = textContent(n)
	case "select":
		f.CurrentValue = selectedOption(n)
	default:
		f.CurrentValue = attr(n, "value")
	}

	f.LabelText = labelFor(n, f.ID, labels)
	return f
}

func labelFor(n *html.Node, id string, labels map[string]string) string {
	if id != "" {
		if text, ok := labels[id]; ok {
			return text
		}
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "label" {
			return textContent(p)
		}
	}
	if text := precedingLabel(n); text != "" {
		return text
	}
	return attr(n, "aria-label")
}

// precedingLabel returns the nearest free <label> before n among its
// siblings. Another control in between owns that label instead.
func precedingLabel(n *html.Node) string {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == "label" {
			if attr(c, "for") != "" || containsControl(c) {
				return ""
			}
			return textContent(c)
		}
		if isOneOf(c.Data, labelledTypes...) || containsControl(c) {
			return ""
		}
	}
	return ""
}

func collectLabels(n *html.Node, labels map[string]string) {
	if n.Type == html.ElementNode && n.Data == "label" {
		if target := attr(n, "for"); target != "" {
			if _, seen := labels[target]; !seen {
				labels[target] = textContent(n)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLabels(c, labels)
	}
}

func containsControl(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (isOneOf(c.Data, labelledTypes...) || containsControl(c)) {
			return true
		}
	}
	return false
}

func selectedOption(n *html.Node) string {
	var first, selected string
	seen := false
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "option" {
			value, ok := attrOK(c, "value")
			if !ok {
				value = textContent(c)
			}
			if !seen {
				first, seen = value, true
			}
			if _, ok := attrOK(c, "selected"); ok && selected == "" {
				selected = value
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			visit(cc)
		}
	}
	visit(n)
	if selected != "" {
		return selected
	}
	return first
}

func isHidden(n *html.Node) bool {
	if _, ok := attrOK(n, "hidden"); ok {
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(attr(n, "style")), " ", "")
	for _, h := range hiddenStyles {
		if strings.Contains(style, h) {
			return true
		}
	}
	return false
}

// textContent returns the visible text below n with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		switch {
		case c.Type == html.TextNode:
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
		case c.Type == html.ElementNode && isOneOf(c.Data, skippedTags...):
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			visit(cc)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
