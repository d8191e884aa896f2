package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"resume-architect/internal/model"
)

func sampleProfile() model.ResumeProfile {
	p := model.DefaultProfile()
	p.References = []model.Reference{{Name: "Ref One", Organization: "Acme", Role: "Manager", Email: "ref@acme.test"}}
	return p
}

func TestRenderIsDeterministic(t *testing.T) {
	p := sampleProfile()
	for _, v := range []Variant{Traditional, Modern} {
		a := Render(p, v)
		b := Render(p, v)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("variant %s: two renders of the same profile differ", v)
		}
	}
}

func TestRenderDoesNotMutateProfile(t *testing.T) {
	p := sampleProfile()
	before := p.Clone()

	Render(p, Traditional)
	Render(p, Modern)

	require.Equal(t, before, p)
}

func TestTraditionalSectionOrder(t *testing.T) {
	tree := Render(sampleProfile(), Traditional)

	var order []string
	for _, n := range tree.Nodes {
		if n.Kind == KindHeading && n.Level == 2 {
			order = append(order, n.Text)
		}
	}
	require.Equal(t, []string{"Summary", "Skills", "Experience", "Projects", "Education", "Achievements", "References"}, order)
}

func TestTraditionalOmitsEmptyReferences(t *testing.T) {
	p := sampleProfile()
	p.References = nil
	tree := Render(p, Traditional)

	for _, n := range tree.Nodes {
		if n.Kind == KindHeading && n.Text == "References" {
			t.Fatal("References heading rendered for an empty reference list")
		}
	}
}

func TestTraditionalSkillColumnsNearEqual(t *testing.T) {
	tests := []struct {
		groups      int
		left, right int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 1, 1},
		{3, 2, 1},
		{4, 2, 2},
	}
	for _, tt := range tests {
		p := model.ResumeProfile{}
		for i := 0; i < tt.groups; i++ {
			p.Skills = append(p.Skills, model.SkillGroup{Category: strings.Repeat("c", i+1), Items: "x"})
		}
		tree := Render(p, Traditional)
		var split *Node
		for i := range tree.Nodes {
			if tree.Nodes[i].Kind == KindTwoColumnSplit {
				split = &tree.Nodes[i]
				break
			}
		}
		require.NotNil(t, split)
		require.Len(t, split.Left, tt.left, "groups=%d", tt.groups)
		require.Len(t, split.Right, tt.right, "groups=%d", tt.groups)
	}
}

func TestModernFlattensSkillsDiscardingLabels(t *testing.T) {
	p := model.ResumeProfile{Skills: []model.SkillGroup{
		{Category: "Languages", Items: "Go, Python"},
		{Category: "Tools", Items: " Docker ,, Kubernetes"},
	}}
	tree := Render(p, Modern)

	root := tree.Nodes[0]
	require.Equal(t, KindTwoColumnSplit, root.Kind)

	var skillBullets []string
	for _, block := range root.Left {
		if block.Kind == KindSidebarBlock && block.Text == "Skills" {
			for _, child := range block.Children {
				if child.Kind == KindBulletList {
					skillBullets = child.Items
				}
			}
		}
	}
	require.Equal(t, []string{"Go", "Python", "Docker", "Kubernetes"}, skillBullets)
}

func TestEmptyProfileStillRenders(t *testing.T) {
	var empty model.ResumeProfile
	for _, v := range []Variant{Traditional, Modern} {
		tree := Render(empty, v)
		require.NotEmpty(t, tree.Nodes, "variant %s", v)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"traditional", Traditional, false},
		{"modern", Modern, false},
		{"", Traditional, false},
		{"fancy", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestHTMLDocument(t *testing.T) {
	p := sampleProfile()
	html, err := HTMLDocument(Render(p, Modern))
	require.NoError(t, err)

	require.Contains(t, html, "<!DOCTYPE html>")
	require.Contains(t, html, p.Identity.FullName)
	require.Contains(t, html, "variant-modern")
	require.Contains(t, html, "col-left")
}

func TestHTMLDocumentEscapesContent(t *testing.T) {
	p := model.ResumeProfile{Summary: `<script>alert("x")</script>`}
	html, err := HTMLDocument(Render(p, Traditional))
	require.NoError(t, err)
	require.NotContains(t, html, "<script>alert")
}
