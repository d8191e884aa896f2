// Package score ingests an uploaded resume document, sends it to the
// external scoring collaborator, and defensively parses the response.
//
// The two flows fail differently on purpose. A garbled review response is
// silently replaced by a fixed fallback report so the UI always has something
// to render; a garbled "fix my resume" response is a hard error, because
// silently replacing the user's real content with a wrong parse would be
// worse than failing loudly.
package score

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"resume-architect/internal/cache"
	"resume-architect/internal/model"
	"resume-architect/internal/profile"
	"resume-architect/pkg/ai"
)

// Scorer is the port to the document scoring/rewrite collaborator.
type Scorer interface {
	ScoreDocument(ctx context.Context, mode ai.Mode, instruction, document string) (string, error)
}

// Saver persists produced reports best-effort; a nil Saver is valid.
type Saver interface {
	SaveReport(ctx context.Context, digest string, report model.ScoreReport) error
}

const reviewInstruction = `You are an ATS resume reviewer. Analyze the resume text and respond with ONLY a single JSON object, no commentary and no code fences, shaped as:
{"overallScore": 0-100, "issueCount": N, "categories": {"Category Name": {"score": 0-100, "items": [{"label": "...", "status": "pass"|"fail", "issues": N, "description": "..."}]}}}`

const optimizeInstruction = `You are a resume editor. Rewrite the resume into a structured profile and respond with ONLY a single JSON object, no commentary and no code fences, shaped as:
{"identity": {"fullName": "...", "title": "...", "email": "...", "phone": "...", "address": ""}, "summary": "...", "skills": [{"category": "...", "items": "comma, separated"}], "experience": [{"role": "...", "company": "...", "location": "...", "period": "...", "highlights": ["..."]}], "projects": [{"name": "...", "description": "..."}], "education": [{"degree": "...", "institution": "...", "period": "...", "grade": ""}], "achievements": ["..."], "references": []}`

const reportTTL = 24 * time.Hour

type Service struct {
	scorer Scorer
	cache  cache.Cache
	saver  Saver
	log    *logrus.Logger
}

func NewService(scorer Scorer, c cache.Cache, saver Saver, log *logrus.Logger) *Service {
	return &Service{scorer: scorer, cache: c, saver: saver, log: log}
}

// Review scores an uploaded document. Transport and extraction failures are
// errors (the pipeline itself is broken); a response the parser cannot make
// sense of degrades to the fixed fallback report.
func (s *Service) Review(ctx context.Context, filename string, data []byte) (model.ScoreReport, error) {
	text, err := DocumentText(filename, data)
	if err != nil {
		return model.ScoreReport{}, err
	}

	digest := documentDigest(data)
	if s.cache != nil {
		var cached model.ScoreReport
		if hit, _ := s.cache.GetJSON(ctx, "score:"+digest, &cached); hit {
			s.log.WithField("digest", digest).Debug("score report served from cache")
			return cached, nil
		}
	}

	raw, err := s.scorer.ScoreDocument(ctx, ai.ModeReview, reviewInstruction, text)
	if err != nil {
		return model.ScoreReport{}, fmt.Errorf("score request failed: %w", err)
	}

	report := s.parseReport(raw)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, "score:"+digest, report, reportTTL); err != nil {
			s.log.WithError(err).Warn("score cache write failed")
		}
	}
	if s.saver != nil {
		if err := s.saver.SaveReport(ctx, digest, report); err != nil {
			s.log.WithError(err).Warn("score report save failed")
		}
	}
	return report, nil
}

// parseReport turns raw collaborator output into a ScoreReport, substituting
// the fallback when the output cannot be parsed or fails shape validation.
func (s *Service) parseReport(raw string) model.ScoreReport {
	m, err := ai.ExtractObject(raw)
	if err != nil {
		s.log.WithError(err).Info("score response unparseable, using fallback report")
		return model.FallbackScoreReport()
	}
	if err := model.ValidateScorePayload(m); err != nil {
		s.log.WithError(err).Info("score response failed validation, using fallback report")
		return model.FallbackScoreReport()
	}
	return decodeReport(m)
}

// Fix asks the collaborator to rewrite the uploaded document into a
// structured profile. Unlike Review there is no fallback: any parse or
// validation failure is surfaced and the caller's profile stays untouched.
func (s *Service) Fix(ctx context.Context, filename string, data []byte) (model.ResumeProfile, error) {
	text, err := DocumentText(filename, data)
	if err != nil {
		return model.ResumeProfile{}, err
	}

	raw, err := s.scorer.ScoreDocument(ctx, ai.ModeOptimize, optimizeInstruction, text)
	if err != nil {
		return model.ResumeProfile{}, fmt.Errorf("optimize request failed: %w", err)
	}

	m, err := ai.ExtractObject(raw)
	if err != nil {
		return model.ResumeProfile{}, fmt.Errorf("optimize response is not valid JSON: %w", err)
	}
	if err := model.ValidateProfilePayload(m); err != nil {
		return model.ResumeProfile{}, fmt.Errorf("optimize response has wrong shape: %w", err)
	}

	b, err := json.Marshal(m)
	if err != nil {
		return model.ResumeProfile{}, err
	}
	var p model.ResumeProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return model.ResumeProfile{}, fmt.Errorf("optimize response does not decode into a profile: %w", err)
	}
	profile.NormalizeProfile(&p)
	return p, nil
}

// decodeReport accepts both wire shapes the collaborator has been seen to
// produce: categories as a name-keyed object or as an array of named
// category objects. Object keys are sorted so decoding stays deterministic.
func decodeReport(m map[string]interface{}) model.ScoreReport {
	report := model.ScoreReport{
		Overall:    intField(m, "overallScore"),
		IssueCount: intField(m, "issueCount"),
	}

	switch cats := m["categories"].(type) {
	case map[string]interface{}:
		names := make([]string, 0, len(cats))
		for name := range cats {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if body, ok := cats[name].(map[string]interface{}); ok {
				report.Categories = append(report.Categories, decodeCategory(name, body))
			}
		}
	case []interface{}:
		for _, raw := range cats {
			if body, ok := raw.(map[string]interface{}); ok {
				name, _ := body["name"].(string)
				report.Categories = append(report.Categories, decodeCategory(name, body))
			}
		}
	}
	return report
}

func decodeCategory(name string, body map[string]interface{}) model.ScoreCategory {
	cat := model.ScoreCategory{Name: name, Score: intField(body, "score")}
	items, _ := body["items"].([]interface{})
	for _, raw := range items {
		im, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		label, _ := im["label"].(string)
		status, _ := im["status"].(string)
		desc, _ := im["description"].(string)
		cat.Items = append(cat.Items, model.ScoreItem{
			Label:       label,
			Status:      status,
			Issues:      intField(im, "issues"),
			Description: desc,
		})
	}
	return cat
}

func intField(m map[string]interface{}, key string) int {
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return 0
}

func documentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
