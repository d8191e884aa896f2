package model

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schemas are intentionally loose: the payloads come from a generative
// collaborator, so only the shape the pipeline depends on is enforced.
const scoreReportSchema = `{
  "type": "object",
  "required": ["categories"],
  "properties": {
    "overallScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "issueCount": {"type": "integer", "minimum": 0},
    "categories": {"type": ["object", "array"]}
  }
}`

const resumeProfileSchema = `{
  "type": "object",
  "properties": {
    "identity": {"type": "object"},
    "summary": {"type": "string"},
    "skills": {"type": "array"},
    "experience": {"type": "array"},
    "projects": {"type": "array"},
    "education": {"type": "array"},
    "achievements": {"type": "array"},
    "references": {"type": "array"}
  }
}`

// ValidateScorePayload checks that a generically-parsed scoring response has
// the shape the review UI depends on.
func ValidateScorePayload(m map[string]interface{}) error {
	return validateAgainst(scoreReportSchema, m)
}

// ValidateProfilePayload checks a generically-parsed "fixed" profile before
// it is allowed to replace the user's real content.
func ValidateProfilePayload(m map[string]interface{}) error {
	return validateAgainst(resumeProfileSchema, m)
}

func validateAgainst(schema string, m map[string]interface{}) error {
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}
