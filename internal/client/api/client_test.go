package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	c := New(srv.URL + "/")
	c.Out = &out
	return c, &out
}

func TestVerboseEchoesIndentedJSON(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"pathId":"p1","found":true,"moves":2,"path":["A1","B3","D4"]}`))
	})
	c.SetVerbose(true)

	resp, err := c.FindPath("A1", "D4")
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	if resp.PathID != "p1" || resp.Moves != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}

	got := out.String()
	for _, want := range []string{
		"Request Body:",
		`  "start": "A1"`,
		"Response Body:",
		`  "pathId": "p1"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestVerboseEchoesNonJSONResponse(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text"))
	})
	c.SetVerbose(true)

	if err := c.RawRequest(http.MethodGet, "/anything", ""); err != nil {
		t.Fatalf("raw request: %v", err)
	}
	if !strings.Contains(out.String(), "Response:") || !strings.Contains(out.String(), "plain text") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestErrorResponse(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid chess notation.","code":"INVALID_NOTATION","details":"start: a1"}`))
	})

	_, err := c.FindPath("a1", "H8")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want StatusError", err)
	}
	if statusErr.Status != http.StatusBadRequest || statusErr.Response.Code != "INVALID_NOTATION" {
		t.Errorf("unexpected error %+v", statusErr)
	}
	if !strings.Contains(out.String(), "Code: INVALID_NOTATION") {
		t.Errorf("error code not printed:\n%s", out.String())
	}
}
