package http

import (
	"fmt"
	"strings"
	"time"

	"knights/internal/core"
	"knights/internal/server/processor"
	"knights/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	rateLimitRate = 10 // req/sec
	historyLimit  = 50
)

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	// Login: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrCodeRateLimit,
				Details: "10 login attempts per minute allowed",
			})
		},
	}), h.LoginHandler)

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrCodeRateLimit,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/paths", h.FindPath)
	api.Get("/paths/:pathId", h.GetPath)
	api.Get("/paths/:pathId/board", h.GetBoard)
	api.Get("/distances/:square", h.GetDistances)
	api.Get("/history", h.ListHistory)
	api.Delete("/history", AuthRequired(svc.ValidateToken), h.PurgeHistory)

	return app
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrCodeInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrCodePathNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrCodeInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrCodeRateLimit
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps processor error codes to HTTP status
func statusFor(code string) int {
	switch code {
	case core.ErrCodePathNotFound:
		return fiber.StatusNotFound
	case core.ErrCodeUnauthorized:
		return fiber.StatusUnauthorized
	case core.ErrCodeStorageDisabled, core.ErrCodeQueueFull:
		return fiber.StatusServiceUnavailable
	case core.ErrCodeNoPath:
		return fiber.StatusUnprocessableEntity
	case core.ErrCodeInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// respond writes a processor response with the given success status
func respond(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func invalidPathID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid path ID format",
		Code:    core.ErrCodeInvalidRequest,
		Details: "path ID must be a valid UUID",
	})
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(core.HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Unix(),
		Storage: h.svc.GetStorageHealth(),
		Workers: h.proc.Workers(),
	})
}

// FindPath runs a shortest path search between two squares
func (h *HTTPHandler) FindPath(c *fiber.Ctx) error {
	// Ensure middleware validation ran
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrCodeInternalError,
		})
	}

	req, ok := c.Locals("validatedBody").(*core.PathRequest)
	if !ok || req == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrCodeInternalError,
		})
	}

	resp := h.proc.Execute(processor.NewFindPathCommand(*req))
	return respond(c, resp, fiber.StatusCreated)
}

// GetPath returns a previously computed path
func (h *HTTPHandler) GetPath(c *fiber.Ctx) error {
	pathID := c.Params("pathId")
	if !isValidUUID(pathID) {
		return invalidPathID(c)
	}

	resp := h.proc.Execute(processor.NewGetPathCommand(pathID))
	return respond(c, resp, fiber.StatusOK)
}

// GetBoard renders the board with the knight at one step of a path
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	pathID := c.Params("pathId")
	if !isValidUUID(pathID) {
		return invalidPathID(c)
	}

	step := c.QueryInt("step", 0)
	resp := h.proc.Execute(processor.NewGetBoardCommand(pathID, step))
	return respond(c, resp, fiber.StatusOK)
}

// GetDistances returns the move distance from a square to every square
func (h *HTTPHandler) GetDistances(c *fiber.Ctx) error {
	resp := h.proc.Execute(processor.NewDistancesCommand(c.Params("square")))
	return respond(c, resp, fiber.StatusOK)
}

// ListHistory returns recorded searches, newest first
func (h *HTTPHandler) ListHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", historyLimit)
	if limit <= 0 || limit > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid limit",
			Code:    core.ErrCodeInvalidRequest,
			Details: "limit must be between 1 and 500",
		})
	}

	cmd := processor.NewListHistoryCommand(c.Query("start"), c.Query("end"), limit)
	resp := h.proc.Execute(cmd)
	return respond(c, resp, fiber.StatusOK)
}

// PurgeHistory deletes all recorded searches
func (h *HTTPHandler) PurgeHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	resp := h.proc.Execute(processor.NewPurgeHistoryCommand(userID))
	return respond(c, resp, fiber.StatusOK)
}
