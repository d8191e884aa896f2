// Package profile owns the in-memory resume profile for one editing session
// and exposes the mutation operations the composer UI drives.
//
// Every operation is total: out-of-range indexes and unknown categories are
// no-ops rather than errors, so the store can never end up in a shape the
// renderer refuses to process.
package profile

import (
	"strings"
	"sync"

	"resume-architect/internal/model"
)

// Store wraps a single ResumeProfile. The HTTP server handles a session's
// requests on concurrent goroutines, and the rewrite busy flag only gates
// other rewrites and exports, so direct edits and snapshot reads can land
// while a rewrite result is being applied. The mutex serializes all of them.
type Store struct {
	mu sync.Mutex
	p  model.ResumeProfile
}

func NewStore(p model.ResumeProfile) *Store {
	return &Store{p: p.Clone()}
}

// Snapshot returns a deep copy for rendering and export, so mutations that
// land after an export started don't change the artifact being produced.
func (s *Store) Snapshot() model.ResumeProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Clone()
}

// Replace swaps the whole profile. Used by the "fix my resume" flow after a
// successful parse; never called with partially-parsed data.
func (s *Store) Replace(p model.ResumeProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p.Clone()
}

// --- scalar fields ---

func (s *Store) Identity() model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Identity
}

func (s *Store) SetIdentity(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Identity = id
}

func (s *Store) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Summary
}

func (s *Store) SetSummary(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Summary = text
}

// --- skills (ordered, category keys unique, last write wins) ---

func (s *Store) Skills() []model.SkillGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SkillGroup(nil), s.p.Skills...)
}

// SetSkill sets the item list for a category. An existing category keeps its
// position; a new one is appended.
func (s *Store) SetSkill(category, items string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.p.Skills {
		if s.p.Skills[i].Category == category {
			s.p.Skills[i].Items = items
			return
		}
	}
	s.p.Skills = append(s.p.Skills, model.SkillGroup{Category: category, Items: items})
}

func (s *Store) SkillItems(category string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.p.Skills {
		if g.Category == category {
			return g.Items, true
		}
	}
	return "", false
}

func (s *Store) RemoveSkill(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.p.Skills {
		if s.p.Skills[i].Category == category {
			s.p.Skills = append(s.p.Skills[:i], s.p.Skills[i+1:]...)
			return
		}
	}
}

// --- experience ---

func (s *Store) Experience() []model.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Experience, len(s.p.Experience))
	for i, e := range s.p.Experience {
		e.Highlights = append([]string(nil), e.Highlights...)
		out[i] = e
	}
	return out
}

func (s *Store) AppendExperience(e model.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Highlights = append([]string(nil), e.Highlights...)
	s.p.Experience = append(s.p.Experience, e)
}

func (s *Store) UpdateExperienceAt(i int, e model.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Experience) {
		return
	}
	e.Highlights = append([]string(nil), e.Highlights...)
	s.p.Experience[i] = e
}

func (s *Store) RemoveExperienceAt(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Experience) {
		return
	}
	s.p.Experience = append(s.p.Experience[:i], s.p.Experience[i+1:]...)
}

// Highlights are addressable independently of their entry: removing one never
// renumbers sibling entries.

func (s *Store) AppendHighlight(entry int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry < 0 || entry >= len(s.p.Experience) {
		return
	}
	s.p.Experience[entry].Highlights = append(s.p.Experience[entry].Highlights, text)
}

func (s *Store) UpdateHighlightAt(entry, i int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry < 0 || entry >= len(s.p.Experience) {
		return
	}
	hs := s.p.Experience[entry].Highlights
	if i < 0 || i >= len(hs) {
		return
	}
	hs[i] = text
}

func (s *Store) RemoveHighlightAt(entry, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry < 0 || entry >= len(s.p.Experience) {
		return
	}
	hs := s.p.Experience[entry].Highlights
	if i < 0 || i >= len(hs) {
		return
	}
	s.p.Experience[entry].Highlights = append(hs[:i], hs[i+1:]...)
}

// SetHighlights replaces the full bullet list of one entry. The rewrite
// orchestrator uses this after splitting a collaborator response into lines.
func (s *Store) SetHighlights(entry int, highlights []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry < 0 || entry >= len(s.p.Experience) {
		return
	}
	s.p.Experience[entry].Highlights = append([]string(nil), highlights...)
}

// --- projects ---

func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Project(nil), s.p.Projects...)
}

func (s *Store) AppendProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Projects = append(s.p.Projects, p)
}

func (s *Store) UpdateProjectAt(i int, p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Projects) {
		return
	}
	s.p.Projects[i] = p
}

func (s *Store) RemoveProjectAt(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Projects) {
		return
	}
	s.p.Projects = append(s.p.Projects[:i], s.p.Projects[i+1:]...)
}

// --- education ---

func (s *Store) Education() []model.Education {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Education(nil), s.p.Education...)
}

func (s *Store) AppendEducation(e model.Education) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Education = append(s.p.Education, e)
}

func (s *Store) UpdateEducationAt(i int, e model.Education) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Education) {
		return
	}
	s.p.Education[i] = e
}

func (s *Store) RemoveEducationAt(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Education) {
		return
	}
	s.p.Education = append(s.p.Education[:i], s.p.Education[i+1:]...)
}

// --- achievements ---

func (s *Store) Achievements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.p.Achievements...)
}

func (s *Store) AppendAchievement(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Achievements = append(s.p.Achievements, text)
}

func (s *Store) UpdateAchievementAt(i int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Achievements) {
		return
	}
	s.p.Achievements[i] = text
}

func (s *Store) RemoveAchievementAt(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.Achievements) {
		return
	}
	s.p.Achievements = append(s.p.Achievements[:i], s.p.Achievements[i+1:]...)
}

// --- references ---

func (s *Store) References() []model.Reference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Reference(nil), s.p.References...)
}

func (s *Store) AppendReference(r model.Reference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.References = append(s.p.References, r)
}

func (s *Store) UpdateReferenceAt(i int, r model.Reference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.References) {
		return
	}
	s.p.References[i] = r
}

func (s *Store) RemoveReferenceAt(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.p.References) {
		return
	}
	s.p.References = append(s.p.References[:i], s.p.References[i+1:]...)
}

// NormalizeProfile fills nil slices with empty ones after a wholesale JSON
// replace, so downstream code never branches on nil.
func NormalizeProfile(p *model.ResumeProfile) {
	if p.Skills == nil {
		p.Skills = []model.SkillGroup{}
	}
	if p.Experience == nil {
		p.Experience = []model.Experience{}
	}
	for i := range p.Experience {
		if p.Experience[i].Highlights == nil {
			p.Experience[i].Highlights = []string{}
		}
	}
	if p.Projects == nil {
		p.Projects = []model.Project{}
	}
	if p.Education == nil {
		p.Education = []model.Education{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.References == nil {
		p.References = []model.Reference{}
	}
	p.Summary = strings.TrimSpace(p.Summary)
}
