package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resume-architect/internal/adapter/repository"
	"resume-architect/internal/export"
	"resume-architect/internal/model"
	"resume-architect/internal/render"
	"resume-architect/internal/rewrite"
	"resume-architect/internal/score"
	"resume-architect/internal/session"
)

type Handler struct {
	sessions *session.Registry
	exporter *export.Exporter
	scores   *score.Service
	repo     *repository.ReportsRepo
	log      *logrus.Logger
}

func NewHandler(sessions *session.Registry, exporter *export.Exporter, scores *score.Service, repo *repository.ReportsRepo, log *logrus.Logger) *Handler {
	return &Handler{sessions: sessions, exporter: exporter, scores: scores, repo: repo, log: log}
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/sessions", h.CreateSession)
	app.Delete("/sessions/:id", h.DeleteSession)
	app.Get("/sessions/:id/profile", h.GetProfile)
	app.Put("/sessions/:id/profile/identity", h.SetIdentity)
	app.Put("/sessions/:id/profile/summary", h.SetSummary)
	app.Put("/sessions/:id/profile/skills", h.SetSkill)
	app.Delete("/sessions/:id/profile/skills/:category", h.RemoveSkill)
	app.Post("/sessions/:id/profile/:section", h.AppendItem)
	app.Put("/sessions/:id/profile/:section/:index", h.UpdateItem)
	app.Delete("/sessions/:id/profile/:section/:index", h.RemoveItem)
	app.Post("/sessions/:id/profile/experience/:index/highlights", h.AppendHighlight)
	app.Put("/sessions/:id/profile/experience/:index/highlights/:hidx", h.UpdateHighlight)
	app.Delete("/sessions/:id/profile/experience/:index/highlights/:hidx", h.RemoveHighlight)

	app.Get("/sessions/:id/render", h.RenderPreview)
	app.Post("/sessions/:id/rewrite", h.Rewrite)
	app.Post("/sessions/:id/export", h.Export)

	app.Post("/score/review", h.Review)
	app.Post("/sessions/:id/score/fix", h.Fix)
}

func (h *Handler) session(c *fiber.Ctx) (*session.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return s, nil
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sessionId": s.ID.String(), "profile": s.Store.Snapshot()})
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}
	h.sessions.Delete(id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) SetIdentity(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	var id model.Identity
	if err := c.BodyParser(&id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	s.Store.SetIdentity(id)
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) SetSummary(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	s.Store.SetSummary(req.Text)
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) SetSkill(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	var req struct {
		Category string `json:"category"`
		Items    string `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	s.Store.SetSkill(req.Category, req.Items)
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) RemoveSkill(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	s.Store.RemoveSkill(c.Params("category"))
	return c.JSON(s.Store.Snapshot())
}

// AppendItem, UpdateItem and RemoveItem cover the four plain list sections.
// Experience highlights have their own routes below.

func (h *Handler) AppendItem(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	return h.mutateSection(c, s, func(section string) error {
		switch section {
		case "experience":
			var e model.Experience
			if err := c.BodyParser(&e); err != nil {
				return err
			}
			s.Store.AppendExperience(e)
		case "projects":
			var p model.Project
			if err := c.BodyParser(&p); err != nil {
				return err
			}
			s.Store.AppendProject(p)
		case "education":
			var e model.Education
			if err := c.BodyParser(&e); err != nil {
				return err
			}
			s.Store.AppendEducation(e)
		case "achievements":
			var req struct {
				Text string `json:"text"`
			}
			if err := c.BodyParser(&req); err != nil {
				return err
			}
			s.Store.AppendAchievement(req.Text)
		case "references":
			var r model.Reference
			if err := c.BodyParser(&r); err != nil {
				return err
			}
			s.Store.AppendReference(r)
		default:
			return errUnknownSection
		}
		return nil
	})
}

func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	return h.mutateSection(c, s, func(section string) error {
		switch section {
		case "experience":
			var e model.Experience
			if err := c.BodyParser(&e); err != nil {
				return err
			}
			s.Store.UpdateExperienceAt(idx, e)
		case "projects":
			var p model.Project
			if err := c.BodyParser(&p); err != nil {
				return err
			}
			s.Store.UpdateProjectAt(idx, p)
		case "education":
			var e model.Education
			if err := c.BodyParser(&e); err != nil {
				return err
			}
			s.Store.UpdateEducationAt(idx, e)
		case "achievements":
			var req struct {
				Text string `json:"text"`
			}
			if err := c.BodyParser(&req); err != nil {
				return err
			}
			s.Store.UpdateAchievementAt(idx, req.Text)
		case "references":
			var r model.Reference
			if err := c.BodyParser(&r); err != nil {
				return err
			}
			s.Store.UpdateReferenceAt(idx, r)
		default:
			return errUnknownSection
		}
		return nil
	})
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	return h.mutateSection(c, s, func(section string) error {
		switch section {
		case "experience":
			s.Store.RemoveExperienceAt(idx)
		case "projects":
			s.Store.RemoveProjectAt(idx)
		case "education":
			s.Store.RemoveEducationAt(idx)
		case "achievements":
			s.Store.RemoveAchievementAt(idx)
		case "references":
			s.Store.RemoveReferenceAt(idx)
		default:
			return errUnknownSection
		}
		return nil
	})
}

var errUnknownSection = fiber.NewError(fiber.StatusNotFound, "unknown profile section")

func (h *Handler) mutateSection(c *fiber.Ctx, s *session.Session, fn func(section string) error) error {
	if err := fn(c.Params("section")); err != nil {
		if err == errUnknownSection {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown profile section"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) AppendHighlight(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	entry, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	s.Store.AppendHighlight(entry, req.Text)
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) UpdateHighlight(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	entry, err1 := strconv.Atoi(c.Params("index"))
	hidx, err2 := strconv.Atoi(c.Params("hidx"))
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	s.Store.UpdateHighlightAt(entry, hidx, req.Text)
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) RemoveHighlight(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	entry, err1 := strconv.Atoi(c.Params("index"))
	hidx, err2 := strconv.Atoi(c.Params("hidx"))
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	s.Store.RemoveHighlightAt(entry, hidx)
	return c.JSON(s.Store.Snapshot())
}

func (h *Handler) RenderPreview(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	variant, err := render.ParseVariant(c.Query("template"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(render.Render(s.Store.Snapshot(), variant))
}

func (h *Handler) Rewrite(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	var req struct {
		rewrite.Target
		Context string `json:"context,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	switch err := s.Rewriter.Rewrite(c.Context(), req.Target, req.Context); err {
	case nil:
		return c.JSON(s.Store.Snapshot())
	case rewrite.ErrBusy:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case rewrite.ErrEmptyContent, rewrite.ErrBadTarget:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		h.log.WithError(err).Warn("rewrite failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}

func (h *Handler) Export(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	if s.Rewriter.Busy() {
		// Export is gated by the same flag as rewrites.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a rewrite is in progress"})
	}
	variant, err := render.ParseVariant(c.Query("template"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	snapshot := s.Store.Snapshot()
	tree := render.Render(snapshot, variant)
	artifact, err := h.exporter.Export(c.Context(), tree, snapshot.Identity.FullName)
	if err != nil {
		h.log.WithError(err).Warn("export failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "export failed, try again or switch template"})
	}

	if h.repo != nil {
		if err := h.repo.SaveExport(context.Background(), s.ID, string(variant), artifact.Filename, len(artifact.Data)); err != nil {
			h.log.WithError(err).Warn("export record save failed")
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+artifact.Filename+`"`)
	return c.Send(artifact.Data)
}

func (h *Handler) Review(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file upload"})
	}
	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file upload"})
	}

	report, err := h.scores.Review(c.Context(), fileHeader.Filename, data)
	if errors.Is(err, score.ErrUnsupportedFormat) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, score.ErrUnreadableDocument) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		h.log.WithError(err).Warn("review failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func (h *Handler) Fix(c *fiber.Ctx) error {
	s, err := h.session(c)
	if s == nil {
		return err
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file upload"})
	}
	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file upload"})
	}

	fixed, err := h.scores.Fix(c.Context(), fileHeader.Filename, data)
	if errors.Is(err, score.ErrUnsupportedFormat) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, score.ErrUnreadableDocument) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		// Unlike review there is no fallback here: the current profile is
		// kept and the failure is reported.
		h.log.WithError(err).Warn("fix failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	s.Store.Replace(fixed)
	return c.JSON(s.Store.Snapshot())
}
