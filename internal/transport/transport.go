// Package transport holds the contracts between front ends and their views.
package transport

import "knights/internal/search"

// View abstracts terminal input and output for the interactive path finder
type View interface {
	ShowPrompt(prompt string)
	ReadToken() (string, error)
	ShowMessage(msg string)
	ShowError(err error)
	ShowReport(result search.Result)
}
