package processor

import (
	"knights/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdFindPath CommandType = iota
	CmdGetPath
	CmdGetBoard
	CmdDistances
	CmdListHistory
	CmdPurgeHistory
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	UserID string
	PathID string // For path-specific commands
	Args   any    // Command-specific arguments
}

// BoardArgs selects one step of a stored path
type BoardArgs struct {
	Step int
}

// HistoryArgs filters the recorded searches
type HistoryArgs struct {
	Start string
	End   string
	Limit int
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewFindPathCommand(req core.PathRequest) Command {
	return Command{
		Type: CmdFindPath,
		Args: req,
	}
}

func NewGetPathCommand(pathID string) Command {
	return Command{
		Type:   CmdGetPath,
		PathID: pathID,
	}
}

func NewGetBoardCommand(pathID string, step int) Command {
	return Command{
		Type:   CmdGetBoard,
		PathID: pathID,
		Args:   BoardArgs{Step: step},
	}
}

func NewDistancesCommand(square string) Command {
	return Command{
		Type: CmdDistances,
		Args: square,
	}
}

func NewListHistoryCommand(start, end string, limit int) Command {
	return Command{
		Type: CmdListHistory,
		Args: HistoryArgs{Start: start, End: end, Limit: limit},
	}
}

func NewPurgeHistoryCommand(userID string) Command {
	return Command{
		Type:   CmdPurgeHistory,
		UserID: userID,
	}
}
