package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func newBackend(t *testing.T, seen *map[string]any) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/predict", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(seen)
		_, _ = w.Write([]byte(`{"prediction":0,"message":"No risk of heart attack","probability":{"no_risk":0.9,"risk":0.1}}`))
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/chat", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":"Walk every day."}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestDeriveCommandPrintsBMI(t *testing.T) {
	t.Parallel()
	out, err := runCLI(t, "derive", "--dob", "2000-06-15", "--weight", "70", "--height", "175")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !strings.Contains(out, "bmi=22.86") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPredictCommandOverlaysFlagsOnInputFile(t *testing.T) {
	t.Parallel()
	var seen map[string]any
	srv := newBackend(t, &seen)

	path := filepath.Join(t.TempDir(), "form.yaml")
	form := "date_of_birth: 2000-06-15\ncholesterol: 180\nweight: 70\nheight: 175\nsmoking: true\n"
	if err := os.WriteFile(path, []byte(form), 0o644); err != nil {
		t.Fatalf("write form: %v", err)
	}

	out, err := runCLI(t, "predict", "--base-url", srv.URL, "--log-level", "error", "--input", path, "--cholesterol", "200", "--diabetes")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, `message="No risk of heart attack"`) || !strings.Contains(out, "risk=10.0%") {
		t.Fatalf("unexpected output: %q", out)
	}
	if seen["cholesterol"] != float64(200) || seen["diabetes"] != float64(1) || seen["smoking"] != float64(1) || seen["bmi"] != 22.86 {
		t.Fatalf("unexpected payload: %v", seen)
	}
}

func TestChatCommandPrintsReply(t *testing.T) {
	t.Parallel()
	var seen map[string]any
	srv := newBackend(t, &seen)

	out, err := runCLI(t, "chat", "--base-url", srv.URL, "--log-level", "error", "how", "to", "lower", "risk?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(out, "you: how to lower risk?") || !strings.Contains(out, "advisor: Walk every day.") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestWatchRequiresInput(t *testing.T) {
	t.Parallel()
	if _, err := runCLI(t, "predict", "--watch"); err == nil {
		t.Fatalf("expected --watch without --input to fail")
	}
}

func TestInvalidBaseURLIsRejected(t *testing.T) {
	t.Parallel()
	if _, err := runCLI(t, "derive", "--base-url", "ftp://example.com"); err == nil {
		t.Fatalf("expected non-http base url to be rejected")
	}
}
