package cli

import (
	"errors"

	"knights/internal/core"
	"knights/internal/search"
	"knights/internal/service"
	"knights/internal/transport"
)

// Exit statuses for the interactive flow
const (
	ExitOK     = 0
	ExitFailed = 1
)

type CLIHandler struct {
	svc  *service.Service
	view transport.View
}

func New(svc *service.Service, view transport.View) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Run prompts for two squares, searches and prints the report.
// It returns the process exit status.
func (h *CLIHandler) Run() int {
	startToken := h.prompt("Enter starting position: ")
	endToken := h.prompt("Enter ending position: ")

	start, err := core.ParseSquare(startToken)
	if err != nil {
		h.view.ShowError(core.ErrInvalidNotation)
		return ExitFailed
	}
	end, err := core.ParseSquare(endToken)
	if err != nil {
		h.view.ShowError(core.ErrInvalidNotation)
		return ExitFailed
	}

	record, err := h.svc.FindPath(start, end)
	if err != nil {
		if errors.Is(err, search.ErrNoPath) {
			h.view.ShowReport(record.Result)
			return ExitFailed
		}
		h.view.ShowError(err)
		return ExitFailed
	}

	h.view.ShowReport(record.Result)
	return ExitOK
}

// prompt shows the prompt and reads one token; missing input yields ""
func (h *CLIHandler) prompt(text string) string {
	h.view.ShowPrompt(text)
	token, err := h.view.ReadToken()
	if err != nil {
		return ""
	}
	return token
}
