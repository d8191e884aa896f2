// Package rewrite mediates AI-assisted rewriting of individual profile
// fields. One rewrite may be in flight per session at a time: a single busy
// flag gates every transformation trigger and the export action, matching
// the one "AI is working" state the UI can show.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"resume-architect/internal/profile"
)

// TextGenerator is the port to the external text-generation collaborator.
type TextGenerator interface {
	Rewrite(ctx context.Context, instruction, content, extra string) (string, error)
}

var (
	// ErrBusy means another rewrite is in flight. Requests are rejected,
	// never queued.
	ErrBusy = errors.New("a rewrite is already in progress")
	// ErrEmptyContent means the targeted field has no text; no request is
	// issued.
	ErrEmptyContent = errors.New("nothing to rewrite: field is empty")
	ErrBadTarget    = errors.New("rewrite target does not exist")
)

// FieldKind names the addressable units a rewrite can target.
type FieldKind string

const (
	FieldSummary            FieldKind = "summary"
	FieldSkillCategory      FieldKind = "skill-category"
	FieldAchievement        FieldKind = "achievement"
	FieldProjectDescription FieldKind = "project-description"
	FieldHighlights         FieldKind = "highlights"
)

// Target selects exactly one addressable unit of the profile.
type Target struct {
	Kind     FieldKind `json:"kind"`
	Category string    `json:"category,omitempty"` // skill-category
	Index    int       `json:"index,omitempty"`    // achievement / project-description / highlights entry
}

// Orchestrator owns the busy flag for one session's store.
type Orchestrator struct {
	store *profile.Store
	gen   TextGenerator
	busy  atomic.Bool
}

func NewOrchestrator(store *profile.Store, gen TextGenerator) *Orchestrator {
	return &Orchestrator{store: store, gen: gen}
}

// Busy reports whether a rewrite is in flight. The export handler consults
// this before starting an export.
func (o *Orchestrator) Busy() bool { return o.busy.Load() }

// Rewrite runs one transformation: read the target's current text, call the
// collaborator, and apply the cleaned result back to that target only. On
// any failure the profile is left untouched and the flag clears.
func (o *Orchestrator) Rewrite(ctx context.Context, t Target, extra string) error {
	current, apply, err := o.resolve(t)
	if err != nil {
		return err
	}
	if strings.TrimSpace(current) == "" {
		// Precondition violation: no request, no state change.
		return ErrEmptyContent
	}

	if !o.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer o.busy.Store(false)

	out, err := o.gen.Rewrite(ctx, instructionFor(t.Kind), current, extra)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", t.Kind, err)
	}
	apply(out)
	return nil
}

// resolve maps a target onto its current text and an apply function. The
// apply function owns the kind-specific response post-processing.
func (o *Orchestrator) resolve(t Target) (string, func(string), error) {
	switch t.Kind {
	case FieldSummary:
		return o.store.Summary(), func(s string) {
			o.store.SetSummary(cleanLine(s))
		}, nil

	case FieldSkillCategory:
		items, ok := o.store.SkillItems(t.Category)
		if !ok {
			return "", nil, ErrBadTarget
		}
		category := t.Category
		return items, func(s string) {
			o.store.SetSkill(category, cleanLine(s))
		}, nil

	case FieldAchievement:
		achievements := o.store.Achievements()
		if t.Index < 0 || t.Index >= len(achievements) {
			return "", nil, ErrBadTarget
		}
		idx := t.Index
		return achievements[idx], func(s string) {
			o.store.UpdateAchievementAt(idx, cleanLine(s))
		}, nil

	case FieldProjectDescription:
		projects := o.store.Projects()
		if t.Index < 0 || t.Index >= len(projects) {
			return "", nil, ErrBadTarget
		}
		idx := t.Index
		return projects[idx].Description, func(s string) {
			p := o.store.Projects()[idx]
			p.Description = cleanLine(s)
			o.store.UpdateProjectAt(idx, p)
		}, nil

	case FieldHighlights:
		entries := o.store.Experience()
		if t.Index < 0 || t.Index >= len(entries) {
			return "", nil, ErrBadTarget
		}
		idx := t.Index
		return strings.Join(entries[idx].Highlights, "\n"), func(s string) {
			o.store.SetHighlights(idx, SplitHighlights(s))
		}, nil
	}
	return "", nil, ErrBadTarget
}

func instructionFor(k FieldKind) string {
	switch k {
	case FieldSummary:
		return "Rewrite this professional summary to be concise and impactful. Keep it to one paragraph. Return only the rewritten text, no commentary."
	case FieldSkillCategory:
		return "Standardize this comma-separated skill list: fix capitalization, remove duplicates, keep it comma-separated. Return only the cleaned list."
	case FieldAchievement:
		return "Rewrite this achievement as a single strong sentence with concrete impact. Return only the rewritten sentence."
	case FieldProjectDescription:
		return "Rewrite this project description in one or two sentences emphasizing outcome and technology. Return only the rewritten text."
	case FieldHighlights:
		return "Rewrite these resume bullet points to start with action verbs and include measurable impact. Return one bullet per line, no numbering or commentary."
	}
	return "Rewrite the following text. Return only the rewritten text."
}

// cleanLine strips surrounding whitespace and one pair of enclosing quote
// characters the collaborator sometimes adds.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []struct{ open, close string }{
		{`"`, `"`}, {"'", "'"}, {"“", "”"},
	} {
		if len(s) >= 2 && strings.HasPrefix(s, q.open) && strings.HasSuffix(s, q.close) {
			s = strings.TrimSpace(s[len(q.open) : len(s)-len(q.close)])
			break
		}
	}
	return s
}

// SplitHighlights turns a multi-line collaborator response into a bullet
// list: one item per line, leading bullet markers stripped, blanks dropped.
func SplitHighlights(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•· \t")
		line = cleanLine(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
