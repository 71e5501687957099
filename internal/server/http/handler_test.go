package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"knights/internal/core"
	"knights/internal/server/processor"
	"knights/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/lixenwraith/auth"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret-minimum-32-characters-long"

func newTestApp(t *testing.T, adminPassword string) *fiber.App {
	t.Helper()
	svc := service.New(nil, []byte(testSecret), zerolog.Nop())
	if adminPassword != "" {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		svc.SetAdminHash(hash)
	}
	proc := processor.New(svc, 2, zerolog.Nop())
	t.Cleanup(func() {
		proc.Close()
		svc.Shutdown()
	})
	return NewFiberApp(proc, svc, true)
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, "")

	status, body := doRequest(t, app, fiber.MethodGet, "/health", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("got status %d", status)
	}
	health := decode[core.HealthResponse](t, body)
	if health.Status != "healthy" || health.Storage != "disabled" || health.Workers != 2 {
		t.Errorf("unexpected health: %+v", health)
	}
}

func TestFindPathRoute(t *testing.T) {
	app := newTestApp(t, "")

	status, body := doRequest(t, app, fiber.MethodPost, "/api/v1/paths", `{"start":"A1","end":"D4"}`, nil)
	if status != fiber.StatusCreated {
		t.Fatalf("got status %d: %s", status, body)
	}
	created := decode[core.PathResponse](t, body)
	if !created.Found || created.Moves != 2 || strings.Join(created.Path, " ") != "A1 B3 D4" {
		t.Fatalf("unexpected path: %+v", created)
	}

	status, body = doRequest(t, app, fiber.MethodGet, "/api/v1/paths/"+created.PathID, "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("get path: status %d", status)
	}
	if got := decode[core.PathResponse](t, body); got.PathID != created.PathID {
		t.Errorf("got path %s, want %s", got.PathID, created.PathID)
	}

	status, body = doRequest(t, app, fiber.MethodGet, "/api/v1/paths/"+created.PathID+"/board?step=1", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("get board: status %d", status)
	}
	boardResp := decode[core.BoardResponse](t, body)
	if boardResp.Square != "B3" || !strings.Contains(boardResp.Board, " K ") {
		t.Errorf("unexpected board: %+v", boardResp)
	}

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/v1/paths/"+created.PathID+"/board?step=9", "", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("out of range step: got status %d", status)
	}
}

func TestFindPathRejectsBadInput(t *testing.T) {
	app := newTestApp(t, "")

	tests := []struct {
		name   string
		body   string
		ctype  string
		status int
		code   string
	}{
		{"off board", `{"start":"Z9","end":"A1"}`, "application/json", fiber.StatusBadRequest, core.ErrCodeInvalidNotation},
		{"lowercase file", `{"start":"a1","end":"H8"}`, "application/json", fiber.StatusBadRequest, core.ErrCodeInvalidNotation},
		{"missing end", `{"start":"A1"}`, "application/json", fiber.StatusBadRequest, core.ErrCodeInvalidRequest},
		{"malformed", `{"start":`, "application/json", fiber.StatusBadRequest, core.ErrCodeInvalidRequest},
		{"wrong content type", `start=A1`, "text/plain", fiber.StatusUnsupportedMediaType, core.ErrCodeInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, fiber.MethodPost, "/api/v1/paths", tt.body,
				map[string]string{"Content-Type": tt.ctype})
			if status != tt.status {
				t.Fatalf("got status %d, want %d: %s", status, tt.status, body)
			}
			if got := decode[core.ErrorResponse](t, body); got.Code != tt.code {
				t.Errorf("got code %s, want %s", got.Code, tt.code)
			}
		})
	}
}

func TestGetPathErrors(t *testing.T) {
	app := newTestApp(t, "")

	status, _ := doRequest(t, app, fiber.MethodGet, "/api/v1/paths/not-a-uuid", "", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("invalid id: got status %d", status)
	}

	status, body := doRequest(t, app, fiber.MethodGet, "/api/v1/paths/3f2b1c6e-8d4a-4e8b-9a7c-1d2e3f4a5b6c", "", nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown id: got status %d", status)
	}
	if got := decode[core.ErrorResponse](t, body); got.Code != core.ErrCodePathNotFound {
		t.Errorf("got code %s", got.Code)
	}
}

func TestDistancesRoute(t *testing.T) {
	app := newTestApp(t, "")

	status, body := doRequest(t, app, fiber.MethodGet, "/api/v1/distances/A1", "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("got status %d", status)
	}
	dist := decode[core.DistanceResponse](t, body)
	if dist.From != "A1" || dist.Table[0][0] != 0 || dist.Table[7][7] != 6 || dist.Table[1][1] != 4 {
		t.Errorf("unexpected table from %s: %v", dist.From, dist.Table)
	}

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/v1/distances/i9", "", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("invalid square: got status %d", status)
	}
}

func TestHistoryWithoutStorage(t *testing.T) {
	app := newTestApp(t, "")

	status, body := doRequest(t, app, fiber.MethodGet, "/api/v1/history", "", nil)
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("got status %d", status)
	}
	if got := decode[core.ErrorResponse](t, body); got.Code != core.ErrCodeStorageDisabled {
		t.Errorf("got code %s", got.Code)
	}

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/v1/history?limit=0", "", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("zero limit: got status %d", status)
	}
}

func TestLoginAndPurge(t *testing.T) {
	app := newTestApp(t, "knight-tour-1")

	status, _ := doRequest(t, app, fiber.MethodDelete, "/api/v1/history", "", nil)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("purge without token: got status %d", status)
	}

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/v1/auth/login", `{"password":"wrong"}`, nil)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("bad password: got status %d", status)
	}

	status, body := doRequest(t, app, fiber.MethodPost, "/api/v1/auth/login", `{"password":"knight-tour-1"}`, nil)
	if status != fiber.StatusOK {
		t.Fatalf("login: got status %d: %s", status, body)
	}
	token := decode[core.AuthResponse](t, body).Token
	if token == "" {
		t.Fatal("empty token")
	}

	// Authenticated, but there is no storage to purge
	status, body = doRequest(t, app, fiber.MethodDelete, "/api/v1/history", "",
		map[string]string{"Authorization": "Bearer " + token})
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("purge: got status %d: %s", status, body)
	}
}

func TestLoginDisabled(t *testing.T) {
	app := newTestApp(t, "")

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/auth/login", `{"password":"anything"}`, nil)
	if status != fiber.StatusNotFound {
		t.Errorf("got status %d, want 404", status)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer abc", ""},
		{"", ""},
		{"Basic xyz", ""},
	}
	for _, tt := range tests {
		if got := extractBearerToken(tt.header); got != tt.want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
