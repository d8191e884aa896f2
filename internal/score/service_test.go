package score

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"resume-architect/internal/logger"
	"resume-architect/internal/model"
	"resume-architect/pkg/ai"
)

type fakeScorer struct {
	reply string
	err   error
	calls int
	mode  ai.Mode
}

func (f *fakeScorer) ScoreDocument(ctx context.Context, mode ai.Mode, instruction, document string) (string, error) {
	f.calls++
	f.mode = mode
	return f.reply, f.err
}

// memCache is a map-backed Cache for tests.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

// reviewFixture calls Review with a synthetic docx so no PDF parsing is
// involved.
func reviewFixture(t *testing.T, svc *Service) (model.ScoreReport, error) {
	t.Helper()
	return svc.Review(context.Background(), "resume.docx", docxBytes(t, "Jane Doe\nSoftware Engineer"))
}

func TestReviewExtractsEmbeddedJSON(t *testing.T) {
	scorer := &fakeScorer{reply: "Here you go:\n{\"overallScore\":70,\"issueCount\":2,\"categories\":{\"Content\":{\"score\":65,\"items\":[{\"label\":\"Impact\",\"status\":\"fail\",\"issues\":2,\"description\":\"weak\"}]}}}\nThanks!"}
	svc := NewService(scorer, nil, nil, logger.New())

	report, err := reviewFixture(t, svc)
	require.NoError(t, err)
	require.Equal(t, ai.ModeReview, scorer.mode)
	require.Equal(t, 70, report.Overall)
	require.Equal(t, 2, report.IssueCount)
	require.Len(t, report.Categories, 1)
	require.Equal(t, "Content", report.Categories[0].Name)
	require.Equal(t, 65, report.Categories[0].Score)
	require.Equal(t, "fail", report.Categories[0].Items[0].Status)
}

func TestReviewFallsBackOnProse(t *testing.T) {
	scorer := &fakeScorer{reply: "I could not produce the JSON you asked for, sorry."}
	svc := NewService(scorer, nil, nil, logger.New())

	first, err := reviewFixture(t, svc)
	require.NoError(t, err)
	second, err := reviewFixture(t, svc)
	require.NoError(t, err)

	require.Equal(t, model.FallbackScoreReport(), first)
	// deterministic across repeated calls
	require.Equal(t, first, second)
}

func TestReviewFallsBackOnMissingCategories(t *testing.T) {
	scorer := &fakeScorer{reply: `{"overallScore": 88}`}
	svc := NewService(scorer, nil, nil, logger.New())

	report, err := reviewFixture(t, svc)
	require.NoError(t, err)
	require.Equal(t, model.FallbackScoreReport(), report)
}

func TestReviewTransportFailureIsAnError(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("502 from collaborator")}
	svc := NewService(scorer, nil, nil, logger.New())

	_, err := reviewFixture(t, svc)
	require.Error(t, err, "a broken pipeline must not be masked by the fallback report")
}

func TestReviewServesSecondCallFromCache(t *testing.T) {
	scorer := &fakeScorer{reply: `{"overallScore":50,"issueCount":0,"categories":{}}`}
	svc := NewService(scorer, newMemCache(), nil, logger.New())

	first, err := reviewFixture(t, svc)
	require.NoError(t, err)
	second, err := reviewFixture(t, svc)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, scorer.calls, "second review of the same bytes must hit the cache")
}

func TestFixReplacesProfileOnSuccess(t *testing.T) {
	scorer := &fakeScorer{reply: "```json\n{\"identity\":{\"fullName\":\"Jane Doe\"},\"summary\":\"Fixed summary\",\"skills\":[{\"category\":\"Languages\",\"items\":\"Go\"}]}\n```"}
	svc := NewService(scorer, nil, nil, logger.New())

	p, err := svc.Fix(context.Background(), "resume.docx", docxBytes(t, "some resume text"))
	require.NoError(t, err)
	require.Equal(t, ai.ModeOptimize, scorer.mode)
	require.Equal(t, "Jane Doe", p.Identity.FullName)
	require.Equal(t, "Fixed summary", p.Summary)
	require.NotNil(t, p.Achievements, "nil slices must be normalized")
}

func TestFixSurfacesParseFailure(t *testing.T) {
	scorer := &fakeScorer{reply: "no json here at all"}
	svc := NewService(scorer, nil, nil, logger.New())

	_, err := svc.Fix(context.Background(), "resume.docx", docxBytes(t, "text"))
	require.Error(t, err, "a garbled optimize response must fail loudly, never fall back")
}

func TestDecodeReportCategoryMapIsSorted(t *testing.T) {
	m := map[string]interface{}{
		"overallScore": float64(80),
		"categories": map[string]interface{}{
			"Zeta":  map[string]interface{}{"score": float64(1)},
			"Alpha": map[string]interface{}{"score": float64(2)},
			"Mid":   map[string]interface{}{"score": float64(3)},
		},
	}
	report := decodeReport(m)
	require.Equal(t, []string{"Alpha", "Mid", "Zeta"}, []string{
		report.Categories[0].Name, report.Categories[1].Name, report.Categories[2].Name,
	})
}

func TestDecodeReportCategoryArray(t *testing.T) {
	m := map[string]interface{}{
		"categories": []interface{}{
			map[string]interface{}{"name": "First", "score": float64(10)},
			map[string]interface{}{"name": "Second", "score": float64(20)},
		},
	}
	report := decodeReport(m)
	require.Len(t, report.Categories, 2)
	require.Equal(t, "First", report.Categories[0].Name)
	require.Equal(t, 20, report.Categories[1].Score)
}
