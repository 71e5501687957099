package core

import "time"

// Request types

type PathRequest struct {
	Start string `json:"start" validate:"required,square"`
	End   string `json:"end" validate:"required,square"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// Response types

type PathResponse struct {
	PathID     string    `json:"pathId"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Found      bool      `json:"found"`
	Moves      int       `json:"moves"`
	Path       []string  `json:"path"`
	Expanded   int       `json:"expanded"`
	Discovered int       `json:"discovered"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BoardResponse struct {
	PathID string `json:"pathId"`
	Step   int    `json:"step"`
	Square string `json:"square"`
	Board  string `json:"board"` // ASCII representation
}

type DistanceResponse struct {
	From  string                   `json:"from"`
	Table [BoardSize][BoardSize]int `json:"table"` // [row][col], -1 if unreachable
}

type HistoryEntry struct {
	SearchID  string    `json:"searchId"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Found     bool      `json:"found"`
	Moves     int       `json:"moves"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	Searches []HistoryEntry `json:"searches"`
	Count    int            `json:"count"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
	Workers int    `json:"workers"`
}
