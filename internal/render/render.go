package render

import (
	"strings"

	"resume-architect/internal/model"
)

// Render produces the Document Tree for a profile and variant. Identical
// inputs always yield identical trees: there is no randomness, clock access,
// or hidden state here.
func Render(p model.ResumeProfile, v Variant) Tree {
	switch v {
	case Modern:
		return Tree{Variant: Modern, Nodes: renderModern(p)}
	default:
		return Tree{Variant: Traditional, Nodes: renderTraditional(p)}
	}
}

// renderTraditional lays out a single flowing column. Section order is fixed:
// Summary, Skills, Experience, Projects, Education, Achievements, References.
// The References section is omitted entirely when the list is empty.
func renderTraditional(p model.ResumeProfile) []Node {
	nodes := []Node{
		heading(1, p.Identity.FullName),
		para(p.Identity.Title),
		paraMeta(contactLine(p.Identity), "contact"),
		rule(),
	}

	nodes = append(nodes, heading(2, "Summary"), para(p.Summary))

	// Skills are split into two near-equal visual columns. This is layout
	// only: the underlying groups stay intact and ordered.
	nodes = append(nodes, heading(2, "Skills"))
	left, right := splitSkillColumns(p.Skills)
	nodes = append(nodes, Node{Kind: KindTwoColumnSplit, Left: left, Right: right})

	nodes = append(nodes, heading(2, "Experience"))
	for _, e := range p.Experience {
		nodes = append(nodes,
			heading(3, e.Role),
			paraMeta(e.Company, strings.TrimSpace(e.Location+" · "+e.Period)),
			bullets(e.Highlights),
		)
	}

	nodes = append(nodes, heading(2, "Projects"))
	for _, pr := range p.Projects {
		nodes = append(nodes, heading(3, pr.Name), para(pr.Description))
	}

	nodes = append(nodes, heading(2, "Education"))
	for _, e := range p.Education {
		nodes = append(nodes, heading(3, e.Degree), paraMeta(e.Institution, strings.TrimSpace(e.Period+" · "+e.Grade)))
	}

	nodes = append(nodes, heading(2, "Achievements"), bullets(p.Achievements))

	if len(p.References) > 0 {
		nodes = append(nodes, heading(2, "References"))
		for _, r := range p.References {
			nodes = append(nodes, heading(3, r.Name), paraMeta(r.Role+", "+r.Organization, strings.TrimSpace(r.Phone+" · "+r.Email)))
		}
	}

	return nodes
}

// renderModern lays out a fixed-width sidebar next to a main column. The
// sidebar's skill bullets flatten every category's comma-split items into one
// list and discard the category labels; that loss is deliberate and specific
// to this variant.
func renderModern(p model.ResumeProfile) []Node {
	sidebar := []Node{
		{Kind: KindSidebarBlock, Text: "Contact", Children: []Node{
			para(p.Identity.Email),
			para(p.Identity.Phone),
			para(p.Identity.Address),
			para(p.Identity.LinkedIn),
			para(p.Identity.GitHub),
			para(p.Identity.Portfolio),
		}},
	}

	eduChildren := []Node{}
	for _, e := range p.Education {
		eduChildren = append(eduChildren, paraMeta(e.Degree, e.Institution+" · "+e.Period))
	}
	sidebar = append(sidebar, Node{Kind: KindSidebarBlock, Text: "Education", Children: eduChildren})

	sidebar = append(sidebar, Node{Kind: KindSidebarBlock, Text: "Skills", Children: []Node{
		bullets(flattenSkills(p.Skills)),
	}})

	sidebar = append(sidebar, Node{Kind: KindSidebarBlock, Text: "Achievements", Children: []Node{
		bullets(p.Achievements),
	}})

	main := []Node{
		heading(1, p.Identity.FullName),
		para(p.Identity.Title),
		rule(),
		heading(2, "Summary"),
		para(p.Summary),
		heading(2, "Experience"),
	}
	for _, e := range p.Experience {
		main = append(main,
			heading(3, e.Role+" - "+e.Company),
			paraMeta(e.Period, e.Location),
			bullets(e.Highlights),
		)
	}

	main = append(main, heading(2, "Projects"))
	for _, pr := range p.Projects {
		main = append(main, heading(3, pr.Name), para(pr.Description))
	}

	if len(p.References) > 0 {
		main = append(main, heading(2, "References"))
		for _, r := range p.References {
			main = append(main, paraMeta(r.Name, r.Role+", "+r.Organization))
		}
	}

	return []Node{{Kind: KindTwoColumnSplit, Left: sidebar, Right: main}}
}

func contactLine(id model.Identity) string {
	parts := []string{}
	for _, s := range []string{id.Email, id.Phone, id.Address, id.LinkedIn, id.GitHub, id.Portfolio} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

// splitSkillColumns divides the ordered skill groups into two near-equal
// columns, the first column taking the extra group on odd counts.
func splitSkillColumns(groups []model.SkillGroup) (left, right []Node) {
	mid := (len(groups) + 1) / 2
	for i, g := range groups {
		n := paraMeta(g.Items, g.Category)
		if i < mid {
			left = append(left, n)
		} else {
			right = append(right, n)
		}
	}
	return left, right
}

// flattenSkills merges all group item lists into one comma-split list,
// dropping labels and empty fragments.
func flattenSkills(groups []model.SkillGroup) []string {
	var out []string
	for _, g := range groups {
		for _, item := range strings.Split(g.Items, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
