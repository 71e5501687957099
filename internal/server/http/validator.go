package http

import (
	"fmt"
	"reflect"
	"strings"

	"knights/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

// newValidator registers the "square" tag for board notation fields
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		_, err := core.ParseSquare(fl.Field().String())
		return err == nil
	})
	return v
}

// validationMiddleware parses and validates request bodies by route
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodGet || method == fiber.MethodDelete || method == fiber.MethodOptions {
		return c.Next()
	}

	path := c.Path()
	var requestType any

	switch {
	case strings.HasSuffix(path, "/paths") && method == fiber.MethodPost:
		requestType = &core.PathRequest{}
	default:
		return c.Next() // No validation for unknown endpoints
	}

	if resp, ok := parseAndValidate(c, requestType); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	// Store validated body for handler use
	c.Locals("validatedBody", requestType)
	c.Locals("validated", true)

	return c.Next()
}

// parseAndValidate decodes the body into dst and runs struct validation
func parseAndValidate(c *fiber.Ctx, dst any) (core.ErrorResponse, bool) {
	if err := c.BodyParser(dst); err != nil {
		return core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrCodeInvalidRequest,
			Details: err.Error(),
		}, false
	}

	errs := validate.Struct(dst)
	if errs == nil {
		return core.ErrorResponse{}, true
	}

	validationErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrCodeInvalidRequest,
			Details: errs.Error(),
		}, false
	}

	code := core.ErrCodeInvalidRequest
	message := "validation failed"
	var details strings.Builder
	for _, err := range validationErrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "square":
			code = core.ErrCodeInvalidNotation
			message = core.ErrInvalidNotation.Error()
			details.WriteString(fmt.Sprintf("%s must be a file A-H followed by a rank 1-8", err.Field()))
		case "min":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
			}
		case "max":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}

	return core.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details.String(),
	}, false
}

// contentTypeValidator ensures POST and PUT requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodPost || method == fiber.MethodPut {
		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrCodeInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
