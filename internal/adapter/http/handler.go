package http

import (
	"errors"
	"strings"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"
	"resume-editor/internal/usecase"
	"resume-editor/pkg/ai"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	editor    *usecase.Editor
	assistant *usecase.Assistant
	exporter  *usecase.Exporter
}

func NewHandler(e *usecase.Editor, a *usecase.Assistant, x *usecase.Exporter) *Handler {
	return &Handler{editor: e, assistant: a, exporter: x}
}

func invalidPayload(op string, err error) error {
	return apperr.E(apperr.CodeInvalidArgument, op, "invalid payload", err)
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.E(apperr.CodeInvalidArgument, "http", "invalid "+name, err)
	}
	return id, nil
}

type createDraftReq struct {
	UserID string `json:"userId"`
}

func (h *Handler) CreateDraft(c *fiber.Ctx) error {
	var req createDraftReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidPayload("CreateDraft", err)
		}
	}
	uid := uuid.New()
	if req.UserID != "" {
		var err error
		if uid, err = uuid.Parse(req.UserID); err != nil {
			return apperr.E(apperr.CodeInvalidArgument, "CreateDraft", "invalid userId", err)
		}
	}
	d, err := h.editor.Create(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.editor.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *Handler) DeleteDraft(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.editor.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ListUserDrafts(c *fiber.Ctx) error {
	uid, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	list, err := h.editor.ListByUser(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"drafts": list})
}

func (h *Handler) ApplyCommand(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var cmd usecase.Command
	if err := c.BodyParser(&cmd); err != nil {
		return invalidPayload("ApplyCommand", err)
	}
	d, err := h.editor.Apply(c.UserContext(), id, cmd)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var patch usecase.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidPayload("UpdateProfile", err)
	}
	d, err := h.editor.UpdateProfile(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

type visibilityReq struct {
	Visible *bool `json:"visible"`
}

func (h *Handler) SetVisibility(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req visibilityReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload("SetVisibility", err)
	}
	if req.Visible == nil {
		return apperr.E(apperr.CodeInvalidArgument, "SetVisibility", "visible is required", nil)
	}
	d, err := h.editor.SetVisibility(c.UserContext(), id, c.Params("key"), *req.Visible)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *Handler) GetMarkup(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.editor.LoadMarkup(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (h *Handler) SaveMarkup(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var m domain.Markup
	if err := c.BodyParser(&m); err != nil {
		return invalidPayload("SaveMarkup", err)
	}
	d, err := h.editor.SaveMarkup(c.UserContext(), id, m)
	if err != nil {
		return err
	}
	return c.JSON(d.Markup)
}

func (h *Handler) ClearMarkup(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.editor.ClearMarkup(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) RenderHTML(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.editor.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	html, err := usecase.RenderDraft(d)
	if err != nil {
		return apperr.E(apperr.CodeInternal, "RenderHTML", "could not render draft", err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

type generateReq struct {
	Kind  string `json:"kind"`
	Input string `json:"input"`
}

// Generate answers {text} or, when the provider fails, 502 {error}.
func (h *Handler) Generate(c *fiber.Ctx) error {
	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload("Generate", err)
	}
	text, err := h.assistant.Generate(c.UserContext(), ai.Request{Kind: ai.Kind(strings.TrimSpace(req.Kind)), Input: req.Input})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"text": text})
}

type assistReq struct {
	Kind  string `json:"kind"`
	Input string `json:"input"`
	usecase.Target
}

func (h *Handler) Assist(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req assistReq
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload("Assist", err)
	}
	res, err := h.assistant.Assist(c.UserContext(), id, ai.Kind(strings.TrimSpace(req.Kind)), req.Input, req.Target)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

type exportReq struct {
	Mode string `json:"mode"`
}

func (h *Handler) StartExport(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	req := exportReq{Mode: string(domain.ExportRaster)}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidPayload("StartExport", err)
		}
	}
	job, err := h.exporter.Start(c.UserContext(), id, domain.ExportMode(req.Mode))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": job.Status})
}

func (h *Handler) GetExport(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	job, err := h.exporter.Job(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(job)
}

func (h *Handler) DownloadExport(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	path, err := h.exporter.File(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Download(path, "resume.pdf")
}

// ErrorHandler writes every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": apperr.Message(err)})
}
