package httpserv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// fixedClassifier flags any message containing "spam".
type fixedClassifier struct{}

func (fixedClassifier) Classify(_ context.Context, message string) (*core.Prediction, error) {
	score := 0.1
	if strings.Contains(message, "spam") {
		score = 0.9
	}
	return &core.Prediction{
		Score:      score,
		Confidence: 0.8,
		AnalyzedAt: time.Now(),
		ModelUsed:  "fixed",
	}, nil
}

func newTestServer() *Server {
	svc := core.NewClassificationService(fixedClassifier{}, nil, zap.NewNop(), false, time.Hour, 0.5)
	return NewServer(svc, zap.NewNop(), "127.0.0.1:0")
}

func doJSON(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestClassifyEndpointJSON(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, `{"message": "this is spam for sure"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message   string  `json:"message"`
		Result    string  `json:"result"`
		IsSpam    bool    `json:"is_spam"`
		Score     float64 `json:"score"`
		ModelUsed string  `json:"model_used"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !resp.IsSpam || resp.Result != "spam" {
		t.Errorf("expected a spam verdict, got %+v", resp)
	}
	if resp.Score != 0.9 {
		t.Errorf("score = %v, want 0.9", resp.Score)
	}
	if resp.Message != "this is spam for sure" {
		t.Errorf("message echoed back as %q", resp.Message)
	}
}

func TestClassifyEndpointHamVerdict(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, `{"message": "see you at lunch"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Result string `json:"result"`
		IsSpam bool   `json:"is_spam"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.IsSpam || resp.Result != "ham" {
		t.Errorf("expected a ham verdict, got %+v", resp)
	}
}

func TestClassifyEndpointForm(t *testing.T) {
	srv := newTestServer()

	form := url.Values{"message": {"free spam offer"}}
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestClassifyEndpointRejectsEmpty(t *testing.T) {
	srv := newTestServer()

	for _, body := range []string{`{}`, `{"message": ""}`, `{"message": "   "}`} {
		rec := doJSON(t, srv, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestIndexServesForm(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<form") {
		t.Error("index page does not contain a form")
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
