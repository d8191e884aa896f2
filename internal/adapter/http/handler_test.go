package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"resume-architect/internal/export"
	"resume-architect/internal/logger"
	"resume-architect/internal/model"
	"resume-architect/internal/score"
	"resume-architect/internal/session"
	"resume-architect/pkg/ai"
)

type stubGen struct {
	reply string
	err   error
}

func (s *stubGen) Rewrite(ctx context.Context, instruction, content, extra string) (string, error) {
	return s.reply, s.err
}

type stubScorer struct {
	reply string
	err   error
}

func (s *stubScorer) ScoreDocument(ctx context.Context, mode ai.Mode, instruction, document string) (string, error) {
	return s.reply, s.err
}

type stubEngine struct{}

func (stubEngine) Rasterize(ctx context.Context, html string, scale float64) ([]byte, error) {
	return []byte("png"), nil
}

func (stubEngine) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF"), nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.New()
	reg := session.NewRegistry(&stubGen{reply: "rewritten"})
	scores := score.NewService(&stubScorer{reply: `{"overallScore":60,"issueCount":1,"categories":{}}`}, nil, nil, log)
	h := NewHandler(reg, export.NewExporter(stubEngine{}), scores, nil, log)

	app := fiber.New()
	h.Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/sessions", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out struct {
		SessionID string              `json:"sessionId"`
		Profile   model.ResumeProfile `json:"profile"`
	}
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.SessionID)
	require.NotEmpty(t, out.Profile.Identity.FullName, "new sessions must start from the default profile")
	return out.SessionID
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/sessions/"+id+"/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodGet, "/sessions/"+id+"/profile", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionBadIDIsRejected(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/sessions/not-a-uuid/profile", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSetSummaryRoundTrips(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodPut, "/sessions/"+id+"/profile/summary", fiber.Map{"text": "A new summary."})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p model.ResumeProfile
	decodeBody(t, resp, &p)
	require.Equal(t, "A new summary.", p.Summary)
}

func TestAppendAndRemoveSectionItem(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/sessions/"+id+"/profile/projects", model.Project{Name: "sidecar", Description: "A thing."})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p model.ResumeProfile
	decodeBody(t, resp, &p)
	require.Len(t, p.Projects, 2)

	resp = doJSON(t, app, fiber.MethodDelete, "/sessions/"+id+"/profile/projects/0", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &p)
	require.Len(t, p.Projects, 1)
	require.Equal(t, "sidecar", p.Projects[0].Name)
}

func TestUnknownSectionIs404(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/sessions/"+id+"/profile/hobbies", fiber.Map{"text": "x"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRenderPreviewVariants(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/sessions/"+id+"/render?template=modern", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var tree struct {
		Variant string `json:"variant"`
	}
	decodeBody(t, resp, &tree)
	require.Equal(t, "modern", tree.Variant)

	// missing template parameter defaults to traditional
	resp = doJSON(t, app, fiber.MethodGet, "/sessions/"+id+"/render", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &tree)
	require.Equal(t, "traditional", tree.Variant)

	resp = doJSON(t, app, fiber.MethodGet, "/sessions/"+id+"/render?template=fancy", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRewriteEmptyFieldIs400(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	// blank the summary first so the rewrite has nothing to work on
	resp := doJSON(t, app, fiber.MethodPut, "/sessions/"+id+"/profile/summary", fiber.Map{"text": "  "})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/sessions/"+id+"/rewrite", fiber.Map{"kind": "summary"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRewriteUpdatesProfile(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/sessions/"+id+"/rewrite", fiber.Map{"kind": "summary"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p model.ResumeProfile
	decodeBody(t, resp, &p)
	require.Equal(t, "rewritten", p.Summary)
}

func TestExportReturnsPDFAttachment(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/sessions/"+id+"/export?template=traditional", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="Alex_Morgan.pdf"`)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF"), body)
}

func uploadRequest(t *testing.T, path, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestReviewRejectsUnsupportedFormat(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "/score/review", "resume.txt", []byte("plain text")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()
}

func TestReviewCorruptUploadIs422(t *testing.T) {
	app := newTestApp(t)

	// correctly named but unreadable: a client problem, not a collaborator one
	resp, err := app.Test(uploadRequest(t, "/score/review", "resume.pdf", []byte("not a pdf")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestReviewMissingFileIs400(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/score/review", strings.NewReader(""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
