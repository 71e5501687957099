// Package processor executes API commands against the service, running
// searches on a worker pool.
package processor

import (
	"errors"
	"fmt"
	"time"

	"knights/internal/board"
	"knights/internal/core"
	"knights/internal/search"
	"knights/internal/service"

	"github.com/rs/zerolog"
)

const searchTimeout = 5 * time.Second

// Processor handles command execution and coordinates between transport and service layers
type Processor struct {
	svc   *service.Service
	queue *SearchQueue
	log   zerolog.Logger
}

// New creates a processor with its own search worker pool
func New(svc *service.Service, workers int, log zerolog.Logger) *Processor {
	log = log.With().Str("component", "processor").Logger()
	return &Processor{
		svc:   svc,
		queue: NewSearchQueue(svc, workers, log),
		log:   log,
	}
}

// Workers returns the number of search workers
func (p *Processor) Workers() int {
	return p.queue.Workers()
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdFindPath:
		return p.handleFindPath(cmd)
	case CmdGetPath:
		return p.handleGetPath(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdDistances:
		return p.handleDistances(cmd)
	case CmdListHistory:
		return p.handleListHistory(cmd)
	case CmdPurgeHistory:
		return p.handlePurgeHistory(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrCodeInvalidRequest)
	}
}

// handleFindPath converts notation and runs the search on the worker pool
func (p *Processor) handleFindPath(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.PathRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	start, err := core.ParseSquare(args.Start)
	if err != nil {
		return p.errorWithDetails(core.ErrInvalidNotation.Error(), core.ErrCodeInvalidNotation, "start: "+args.Start)
	}
	end, err := core.ParseSquare(args.End)
	if err != nil {
		return p.errorWithDetails(core.ErrInvalidNotation.Error(), core.ErrCodeInvalidNotation, "end: "+args.End)
	}

	record, err := p.queue.Search(start, end, searchTimeout)
	switch {
	case err == nil:
	case errors.Is(err, search.ErrNoPath):
		// Still a completed search; the response carries found=false
	case errors.Is(err, ErrQueueFull), errors.Is(err, ErrQueueShutdown):
		return p.errorResponse(err.Error(), core.ErrCodeQueueFull)
	default:
		p.log.Error().Err(err).Str("start", args.Start).Str("end", args.End).Msg("search failed")
		return p.errorResponse("search failed", core.ErrCodeInternalError)
	}

	return ProcessorResponse{
		Success: true,
		Data:    buildPathResponse(record),
	}
}

func (p *Processor) handleGetPath(cmd Command) ProcessorResponse {
	record, resp, ok := p.lookupPath(cmd.PathID)
	if !ok {
		return resp
	}
	return ProcessorResponse{
		Success: true,
		Data:    buildPathResponse(record),
	}
}

// handleGetBoard renders one step of a path; step 0 is the start square
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(BoardArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	record, resp, ok := p.lookupPath(cmd.PathID)
	if !ok {
		return resp
	}
	if !record.Result.Found {
		return p.errorResponse("no path to render", core.ErrCodeNoPath)
	}

	path := record.Result.Path
	if args.Step < 0 || args.Step >= len(path) {
		return p.errorWithDetails("step out of range", core.ErrCodeInvalidRequest,
			fmt.Sprintf("step must be between 0 and %d", len(path)-1))
	}

	sq := path[args.Step]
	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			PathID: record.ID,
			Step:   args.Step,
			Square: sq.String(),
			Board:  board.Render(sq),
		},
	}
}

func (p *Processor) handleDistances(cmd Command) ProcessorResponse {
	token, ok := cmd.Args.(string)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	from, err := core.ParseSquare(token)
	if err != nil {
		return p.errorWithDetails(core.ErrInvalidNotation.Error(), core.ErrCodeInvalidNotation, token)
	}

	table, err := p.svc.Distances(from)
	if err != nil {
		return p.errorResponse("failed to compute distances", core.ErrCodeInternalError)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.DistanceResponse{
			From:  from.String(),
			Table: [core.BoardSize][core.BoardSize]int(table),
		},
	}
}

func (p *Processor) handleListHistory(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(HistoryArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	// Filters must be valid notation
	start, resp, ok := p.canonicalFilter(args.Start)
	if !ok {
		return resp
	}
	end, resp, ok := p.canonicalFilter(args.End)
	if !ok {
		return resp
	}

	records, err := p.svc.History(start, end, args.Limit)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			return p.errorResponse(err.Error(), core.ErrCodeStorageDisabled)
		}
		p.log.Error().Err(err).Msg("history query failed")
		return p.errorResponse("history query failed", core.ErrCodeInternalError)
	}

	entries := make([]core.HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, core.HistoryEntry{
			SearchID:  r.SearchID,
			Start:     r.StartSquare,
			End:       r.EndSquare,
			Found:     r.Found,
			Moves:     r.Moves,
			Path:      r.Path,
			CreatedAt: r.CreatedAt,
		})
	}

	return ProcessorResponse{
		Success: true,
		Data:    core.HistoryResponse{Searches: entries, Count: len(entries)},
	}
}

func (p *Processor) handlePurgeHistory(cmd Command) ProcessorResponse {
	if cmd.UserID != service.AdminSubject {
		return p.errorResponse("admin token required", core.ErrCodeUnauthorized)
	}

	deleted, err := p.svc.PurgeHistory()
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			return p.errorResponse(err.Error(), core.ErrCodeStorageDisabled)
		}
		p.log.Error().Err(err).Msg("history purge failed")
		return p.errorResponse("history purge failed", core.ErrCodeInternalError)
	}

	return ProcessorResponse{
		Success: true,
		Data:    core.PurgeResponse{Deleted: deleted},
	}
}

func (p *Processor) lookupPath(id string) (*service.PathRecord, ProcessorResponse, bool) {
	record, err := p.svc.GetPath(id)
	if err != nil {
		if errors.Is(err, service.ErrPathNotFound) {
			return nil, p.errorResponse("path not found", core.ErrCodePathNotFound), false
		}
		p.log.Error().Err(err).Str("id", id).Msg("path lookup failed")
		return nil, p.errorResponse("path lookup failed", core.ErrCodeInternalError), false
	}
	return record, ProcessorResponse{}, true
}

// canonicalFilter validates a notation filter; "" and "*" pass through
func (p *Processor) canonicalFilter(token string) (string, ProcessorResponse, bool) {
	if token == "" || token == "*" {
		return token, ProcessorResponse{}, true
	}
	sq, err := core.ParseSquare(token)
	if err != nil {
		return "", p.errorWithDetails(core.ErrInvalidNotation.Error(), core.ErrCodeInvalidNotation, token), false
	}
	return sq.String(), ProcessorResponse{}, true
}

func buildPathResponse(record *service.PathRecord) core.PathResponse {
	result := record.Result
	path := make([]string, len(result.Path))
	for i, sq := range result.Path {
		path[i] = sq.String()
	}

	return core.PathResponse{
		PathID:     record.ID,
		Start:      result.Start.String(),
		End:        result.End.String(),
		Found:      result.Found,
		Moves:      result.Moves(),
		Path:       path,
		Expanded:   result.Expanded,
		Discovered: result.Discovered,
		CreatedAt:  record.CreatedAt,
	}
}

func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func (p *Processor) errorWithDetails(message, code, details string) ProcessorResponse {
	resp := p.errorResponse(message, code)
	resp.Error.Details = details
	return resp
}

// Close stops the worker pool
func (p *Processor) Close() error {
	return p.queue.Shutdown(searchTimeout)
}
