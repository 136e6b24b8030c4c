package controller

import (
	"io"

	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	UploadResume(ctx *fiber.Ctx) error
	UploadJobDescription(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload/resume", c.UploadResume)
	r.Post("/upload/job-description", c.UploadJobDescription)
}

func (c *documentController) UploadResume(ctx *fiber.Ctx) error {
	return c.upload(ctx, "Success extract resume text")
}

func (c *documentController) UploadJobDescription(ctx *fiber.Ctx) error {
	return c.upload(ctx, "Success extract job description text")
}

func (c *documentController) upload(ctx *fiber.Ctx, successMessage string) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.BadRequestError("file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.BadRequestError("could not open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return serverutils.BadRequestError("could not read uploaded file")
	}

	res, err := c.service.ExtractText(ctx.Context(), fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(successMessage, res))
}
