package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	chatservice "github.com/zhouzirui/campaign-concierge/backend/internal/service/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
)

func setupRouter(t *testing.T) (*chi.Mux, *chatservice.Service) {
	t.Helper()
	pipeline, err := agent.NewPipeline(context.Background(), agent.NewResponder(rules.Seed()))
	if err != nil {
		t.Fatalf("NewPipeline err: %v", err)
	}
	chatSvc := chatservice.NewService(pipeline)
	scheduler := delivery.NewScheduler(delivery.Config{MinDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond})
	handler := New(chatSvc, scheduler, 16<<10)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postJSON(r, "/session", map[string]string{})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var session struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected session id")
	}
}

func TestSubmitMessageReturnsReplyAndContext(t *testing.T) {
	r, chatSvc := setupRouter(t)
	session, _ := chatSvc.CreateSession(context.Background())

	resp := postJSON(r, "/messages", map[string]string{
		"sessionId": session.ID,
		"text":      "We want to boost leads, budget is $10k, email me at joe@acme.com",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got exchangeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.AgentMessage.Text == "" || got.AgentMessage.Sender != "agent" {
		t.Fatalf("unexpected agent message: %+v", got.AgentMessage)
	}
	if got.Intent != "blueprint" {
		t.Fatalf("expected blueprint intent, got %s", got.Intent)
	}
	if got.Context.Budget != "$10k" || got.Context.Contact != "joe@acme.com" {
		t.Fatalf("unexpected context: %+v", got.Context)
	}
	if len(got.Momentum) != 3 {
		t.Fatalf("expected goals, budget and contact lines, got %v", got.Momentum)
	}

	transcript, _ := chatSvc.LoadTranscript(context.Background(), session.ID)
	if len(transcript) != 2 {
		t.Fatalf("expected user and agent messages, got %d", len(transcript))
	}
}

func TestSubmitMessageUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postJSON(r, "/messages", map[string]string{"sessionId": "missing", "text": "hi"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSubmitMessageBlankText(t *testing.T) {
	r, chatSvc := setupRouter(t)
	session, _ := chatSvc.CreateSession(context.Background())

	resp := postJSON(r, "/messages", map[string]string{"sessionId": session.ID, "text": "  "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitMessageInvalidBody(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader([]byte(`{"sessionId":`)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMomentumEndpoint(t *testing.T) {
	r, chatSvc := setupRouter(t)
	ctx := context.Background()
	session, _ := chatSvc.CreateSession(ctx)
	if _, err := chatSvc.Submit(ctx, session.ID, "We post on TikTok and need more sales"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/session/"+session.ID+"/momentum", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Momentum []string `json:"momentum"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	want := []string{"Goals: Sales Growth", "Channels: Social Media"}
	if len(body.Momentum) != len(want) {
		t.Fatalf("expected %v, got %v", want, body.Momentum)
	}
	for i := range want {
		if body.Momentum[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], body.Momentum[i])
		}
	}
}

func TestEndSessionRemovesSession(t *testing.T) {
	r, chatSvc := setupRouter(t)
	session, _ := chatSvc.CreateSession(context.Background())

	req := httptest.NewRequest(http.MethodDelete, "/session/"+session.ID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+session.ID, nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after end, got %d", resp.Code)
	}
}
