package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"finbot-be/internal/apperror"
	"finbot-be/internal/dto"
	"finbot-be/internal/pkg/serverutils"
	"finbot-be/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	AddUrl(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type documentController struct {
	documents service.IDocumentService
	rag       service.IRagService
}

func NewDocumentController(documents service.IDocumentService, rag service.IRagService) IDocumentController {
	return &documentController{documents: documents, rag: rag}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("/add-url", c.AddUrl)
	h.Post("/upload", c.Upload)
	h.Get("", c.List)
}

func (c *documentController) AddUrl(ctx *fiber.Ctx) error {
	sessionId := serverutils.SessionID(ctx)

	var req dto.AddUrlRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	added, err := c.documents.AddFromURL(ctx.Context(), sessionId, req.Url)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document added", dto.AddUrlResponse{
		ChunksAdded: added,
		SessionId:   sessionId,
	}))
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	sessionId := serverutils.SessionID(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Invalid("multipart field 'file' is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return apperror.Invalid("cannot open uploaded file: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apperror.Invalid("cannot read uploaded file: %v", err)
	}

	added, err := c.documents.AddUpload(
		ctx.Context(),
		sessionId,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("File ingested", dto.UploadResponse{
		ChunksAdded: added,
		Filename:    fileHeader.Filename,
		SessionId:   sessionId,
	}))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	sessionId := serverutils.SessionID(ctx)

	docs, err := c.rag.ListDocuments(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get documents", docs))
}
