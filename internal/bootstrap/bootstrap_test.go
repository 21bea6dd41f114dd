package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"heartrisk/internal/bootstrap"
	intakedto "heartrisk/internal/modules/intake/dto"
	"heartrisk/internal/platform/config"
	"heartrisk/internal/platform/logging"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/predict", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad body"}`))
			return
		}
		if body["cholesterol"] != float64(200) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"cholesterol missing"}`))
			return
		}
		_, _ = w.Write([]byte(`{"prediction":1,"message":"At risk of heart attack","probability":{"no_risk":0.35,"risk":0.65}}`))
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/chat", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"response":"echo: ` + body.Message + `"}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewWiresIntakeAndChatToTheBackend(t *testing.T) {
	t.Parallel()
	srv := newBackend(t)
	cfg, err := config.New(srv.URL+"/", 0, "error", "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := bootstrap.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	ctx := context.Background()

	out, err := app.IntakeCLI.Submit(ctx, intakedto.FormInput{
		Values: map[string]string{"cholesterol": "200", "weight": "70", "height": "175"},
		Flags:  map[string]bool{"diabetes": true},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.AtRisk || out.Risk != 0.65 || out.BMI != 22.86 || out.RequestID == "" {
		t.Fatalf("unexpected prediction: %+v", out)
	}
	if current, ok := app.IntakeCLI.Current(); !ok || current.RequestID != out.RequestID {
		t.Fatalf("current result not stored: %+v %v", current, ok)
	}

	if _, err := app.IntakeCLI.Submit(ctx, intakedto.FormInput{}); err == nil {
		t.Fatalf("expected backend error to surface")
	}
	if current, _ := app.IntakeCLI.Current(); current.RequestID != out.RequestID {
		t.Fatalf("failed submit must keep previous result")
	}

	sent, err := app.ChatCLI.Send(ctx, "hello")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if sent.Reply.Text != "echo: hello" || sent.Stale {
		t.Fatalf("unexpected reply: %+v", sent)
	}
	transcript, _ := app.ChatCLI.Transcript(ctx)
	if len(transcript) != 2 || transcript[0].Role != "user" || transcript[1].Role != "bot" {
		t.Fatalf("unexpected transcript: %+v", transcript)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	if _, err := bootstrap.New(config.Config{BaseURL: "localhost:5000"}, nil); err == nil {
		t.Fatalf("expected relative base url to be rejected")
	}
}
