package prediction

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/puvop/puvop/internal/domain/features"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_CreatePrediction(t *testing.T) {
	h, e := newTestHandler()
	body := `{
		"inputs": {"high_grade_vur": 1, "nadir_creatinine": 0.5, "renal_dysplasia": 1, "baseline_egfr": 58},
		"outcomes": ["ckd"],
		"horizons_days": [365, 1095]
	}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePrediction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var eval Evaluation
	if err := json.Unmarshal(rec.Body.Bytes(), &eval); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(eval.Results) != 1 || eval.Results[0].Status != StatusOK {
		t.Errorf("unexpected results: %+v", eval.Results)
	}
}

func TestHandler_CreatePrediction_UnknownOutcome(t *testing.T) {
	h, e := newTestHandler()
	body := `{"inputs": {"high_grade_vur": 1}, "outcomes": ["nothing-like-this"]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePrediction(c)
	if err == nil {
		t.Fatal("expected error for unknown outcome")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_CreatePrediction_EmptyInputs(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePrediction(c)
	if err == nil {
		t.Fatal("expected error for empty inputs")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetPrediction(t *testing.T) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	eval, err := svc.Evaluate(nil, &EvaluationRequest{
		Inputs:   survivalInputs(),
		Outcomes: []string{features.OutcomeCKD},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(eval.ID.String())

	if err := h.GetPrediction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPrediction_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetPrediction(c)
	if err == nil {
		t.Fatal("expected error for unknown evaluation")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetPrediction_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetPrediction(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListPredictions(t *testing.T) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	for i := 0; i < 3; i++ {
		if _, err := svc.Evaluate(nil, &EvaluationRequest{
			Inputs:   survivalInputs(),
			Outcomes: []string{features.OutcomeCKD},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/?limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPredictions(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data    []json.RawMessage `json:"data"`
		Total   int               `json:"total"`
		HasMore bool              `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 3 || len(resp.Data) != 2 || !resp.HasMore {
		t.Errorf("unexpected page: total=%d len=%d has_more=%v", resp.Total, len(resp.Data), resp.HasMore)
	}
}

func TestHandler_ListOutcomes(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListOutcomes(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var descs []OutcomeDescriptor
	if err := json.Unmarshal(rec.Body.Bytes(), &descs); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(descs) != 1 || descs[0].ID != features.OutcomeCKD {
		t.Errorf("unexpected descriptors: %+v", descs)
	}
	if len(descs[0].Fields) != 4 {
		t.Errorf("ckd fields: got %d, want 4", len(descs[0].Fields))
	}
}
