package controller

import (
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	CreateJobDescription(ctx *fiber.Ctx) error
	CreateCandidateResume(ctx *fiber.Ctx) error
	Setup(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Start(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	AddIntegrityFlag(ctx *fiber.Ctx) error
}

type interviewController struct {
	service service.IInterviewService
}

func NewInterviewController(service service.IInterviewService) IInterviewController {
	return &interviewController{service: service}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	r.Post("/job-description", c.CreateJobDescription)
	r.Post("/candidate-resume", c.CreateCandidateResume)
	r.Post("/interview/setup", c.Setup)
	r.Get("/interviews", c.GetAll)
	r.Get("/interview/:id", c.Show)
	r.Post("/interview/:id/start", c.Start)
	r.Post("/interview/:id/end", c.End)
	r.Post("/interview/:id/integrity-flag", c.AddIntegrityFlag)
}

func (c *interviewController) CreateJobDescription(ctx *fiber.Ctx) error {
	var req dto.CreateJobDescriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateJobDescription(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create job description", res))
}

func (c *interviewController) CreateCandidateResume(ctx *fiber.Ctx) error {
	var req dto.CreateCandidateResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateCandidateResume(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create candidate resume", res))
}

func (c *interviewController) Setup(ctx *fiber.Ctx) error {
	var req dto.SetupInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Setup(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success setup interview", res))
}

func (c *interviewController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequestError("invalid interview id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NotFoundError("Interview not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show interview", res))
}

func (c *interviewController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all interviews", res))
}

func (c *interviewController) Start(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequestError("invalid interview id")
	}

	res, err := c.service.Start(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NotFoundError("Interview not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start interview", res))
}

func (c *interviewController) End(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequestError("invalid interview id")
	}

	res, err := c.service.End(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.NotFoundError("Interview not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end interview", res))
}

func (c *interviewController) AddIntegrityFlag(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequestError("invalid interview id")
	}

	var req dto.AddIntegrityFlagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	found, err := c.service.AddIntegrityFlag(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	if !found {
		return serverutils.NotFoundError("Interview not found")
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success add integrity flag", nil))
}
