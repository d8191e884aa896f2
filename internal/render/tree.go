// Package render converts a ResumeProfile into a Document Tree: a static,
// serializable structure shared by the on-screen preview and the exporter.
// Rendering is a pure function of (profile, variant) and never mutates the
// profile.
package render

import "fmt"

// Variant selects one of the fixed document layouts.
type Variant string

const (
	// Traditional is a single flowing column tuned for automated screening.
	Traditional Variant = "traditional"
	// Modern is a two-column layout with a fixed-width sidebar.
	Modern Variant = "modern"
)

// ParseVariant maps a wire string onto a known variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case Traditional, Modern:
		return Variant(s), nil
	case "":
		return Traditional, nil
	}
	return "", fmt.Errorf("unknown template variant %q", s)
}

// NodeKind enumerates the typed document nodes. Nodes carry no behavior.
type NodeKind string

const (
	KindHeading        NodeKind = "heading"
	KindRule           NodeKind = "rule"
	KindParagraph      NodeKind = "paragraph"
	KindBulletList     NodeKind = "bullet-list"
	KindTwoColumnSplit NodeKind = "two-column-split"
	KindSidebarBlock   NodeKind = "sidebar-block"
)

// Node is one element of a Document Tree.
//
//   - heading: Text is the heading text, Level 1..3
//   - rule: no payload
//   - paragraph: Text, optional Meta ("label: value" subtitles)
//   - bullet-list: Items
//   - two-column-split: Left and Right subtrees
//   - sidebar-block: Children, Text as the block title
type Node struct {
	Kind     NodeKind `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Meta     string   `json:"meta,omitempty"`
	Level    int      `json:"level,omitempty"`
	Items    []string `json:"items,omitempty"`
	Left     []Node   `json:"left,omitempty"`
	Right    []Node   `json:"right,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// Tree is a rendered document.
type Tree struct {
	Variant Variant `json:"variant"`
	Nodes   []Node  `json:"nodes"`
}

func heading(level int, text string) Node {
	return Node{Kind: KindHeading, Level: level, Text: text}
}

func rule() Node { return Node{Kind: KindRule} }

func para(text string) Node { return Node{Kind: KindParagraph, Text: text} }

func paraMeta(text, meta string) Node {
	return Node{Kind: KindParagraph, Text: text, Meta: meta}
}

func bullets(items []string) Node { return Node{Kind: KindBulletList, Items: items} }
