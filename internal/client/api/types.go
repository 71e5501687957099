package api

import "knights/internal/core"

// Wire types shared with the server
type (
	PathRequest      = core.PathRequest
	PathResponse     = core.PathResponse
	BoardResponse    = core.BoardResponse
	DistanceResponse = core.DistanceResponse
	HistoryResponse  = core.HistoryResponse
	LoginRequest     = core.LoginRequest
	AuthResponse     = core.AuthResponse
	PurgeResponse    = core.PurgeResponse
	HealthResponse   = core.HealthResponse
	ErrorResponse    = core.ErrorResponse
)
