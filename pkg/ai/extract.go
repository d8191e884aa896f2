package ai

import (
	"encoding/json"
	"errors"
)

// ErrNoObject reports that no parseable JSON object could be located in a
// collaborator response.
var ErrNoObject = errors.New("no JSON object found in response")

// ExtractObject locates a JSON object inside free-form collaborator output
// and unmarshals it. The collaborator is asked for bare JSON but is not
// contractually constrained, so the text may be wrapped in prose or code
// fences; we take the substring between the first '{' and the last '}'.
func ExtractObject(s string) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := extractInto(s, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ExtractObjectInto is ExtractObject targeting a typed destination.
func ExtractObjectInto(s string, dst interface{}) error {
	return extractInto(s, dst)
}

func extractInto(s string, dst interface{}) error {
	if err := json.Unmarshal([]byte(s), dst); err == nil {
		return nil
	}
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start = i
			break
		}
	}
	end := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '}' {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return ErrNoObject
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), dst); err != nil {
		return ErrNoObject
	}
	return nil
}
