package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gohttp "github.com/governa-io/governa/framework/http"
)

// ── Response ─────────────────────────────────────────────────────────────────

func TestResponse_Success(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).Success(map[string]any{"framework": "gdpr"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}

	var body map[string]map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["data"]["framework"] != "gdpr" {
		t.Errorf("data.framework: got %v", body["data"]["framework"])
	}
}

func TestResponse_Error(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).Error(http.StatusBadRequest, "bad input")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "bad input") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

func TestResponse_ValidationError(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).ValidationError(map[string][]string{
		"dataset": {"failed on rule: required"},
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "dataset") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

// ── Request ──────────────────────────────────────────────────────────────────

type scoreRequest struct {
	Dataset   string  `json:"dataset" validate:"required"`
	Attribute string  `json:"attribute" validate:"required"`
	Threshold float64 `json:"threshold" validate:"gte=0,lte=1"`
}

func TestRequest_Bind(t *testing.T) {
	raw := httptest.NewRequest(http.MethodPost, "/score",
		strings.NewReader(`{"dataset":"loans","attribute":"age","threshold":0.8}`))

	var body scoreRequest
	if err := gohttp.NewRequest(raw).Bind(&body); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if body.Dataset != "loans" || body.Threshold != 0.8 {
		t.Errorf("bound: %+v", body)
	}
}

func TestRequest_Bind_EmptyBody(t *testing.T) {
	raw := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(""))

	var body scoreRequest
	if err := gohttp.NewRequest(raw).Bind(&body); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestRequest_BindValidated_FailsOnMissingFields(t *testing.T) {
	raw := httptest.NewRequest(http.MethodPost, "/score",
		strings.NewReader(`{"threshold":0.5}`))

	var body scoreRequest
	bag, err := gohttp.NewRequest(raw).BindValidated(&body)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if bag == nil {
		t.Fatal("expected a validation error bag")
	}
	if _, ok := bag["dataset"]; !ok {
		t.Errorf("bag should flag dataset: %v", bag)
	}
}

func TestRequest_BearerToken(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	raw.Header.Set("Authorization", "Bearer tok-123")

	if got := gohttp.NewRequest(raw).BearerToken(); got != "tok-123" {
		t.Errorf("token: got %q", got)
	}
}
