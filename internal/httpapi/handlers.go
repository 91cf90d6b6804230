package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/calebhart/seedpost/internal/contract"
	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/llm"
	"github.com/calebhart/seedpost/internal/state"
)

// defaultSession is used when the caller sends no X-Session-ID header.
const defaultSession = "default"

func sessionOf(c *fiber.Ctx) string {
	if id := c.Get("X-Session-ID"); id != "" {
		return id
	}
	return defaultSession
}

func (s *Server) handleExample(c *fiber.Ctx) error {
	return c.JSON(contract.SampleRequest())
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req contract.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := s.validate.Struct(&req); err != nil {
		return validationJSON(c, err)
	}

	cal, err := s.svc.Generate(c.UserContext(), sessionOf(c), req.ToConfig())
	if err != nil {
		return generationError(c, err)
	}
	return c.JSON(cal)
}

func (s *Server) handleNextWeek(c *fiber.Ctx) error {
	cal, err := s.svc.NextWeek(c.UserContext(), sessionOf(c))
	if err != nil {
		return generationError(c, err)
	}
	return c.JSON(cal)
}

func (s *Server) handleCurrent(c *fiber.Ctx) error {
	cal, err := s.svc.Current(c.UserContext(), sessionOf(c))
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "no calendar generated yet")
		}
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(cal)
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	if err := s.svc.Reset(c.UserContext(), sessionOf(c)); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleValidate(c *fiber.Ctx) error {
	var req contract.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return c.JSON(req.Review())
}

// generationError maps engine errors onto HTTP statuses: caller mistakes are
// 400, missing state 404, provider trouble 502 (retryable), the rest 500.
func generationError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorJSON(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, state.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "no calendar for this session; generate an initial week first")
	case errors.Is(err, llm.ErrProvider),
		errors.Is(err, llm.ErrRetryExhausted),
		errors.Is(err, llm.ErrTimeout):
		return errorJSON(c, fiber.StatusBadGateway, "generation provider unavailable: "+err.Error())
	default:
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// validationJSON flattens validator.v10 field errors into a readable map.
func validationJSON(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errorJSON(c, fiber.StatusBadRequest, "invalid input")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Namespace()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}
