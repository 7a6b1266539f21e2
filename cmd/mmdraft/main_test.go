package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leofalp/mmdraft/core/mailmate"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.ini")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func decodeDocument(t *testing.T, out *bytes.Buffer) mailmate.Document {
	t.Helper()
	if strings.Count(out.String(), "\n") != 1 {
		t.Fatalf("expected exactly one line on stdout, got %q", out.String())
	}
	var doc mailmate.Document
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out.String())
	}
	return doc
}

func TestRun_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Sounds great, see you then!"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "mmdraft.log")
	configPath := writeConfig(t, dir, fmt.Sprintf(`[DEFAULT]
ApiProvider = openai
ApiKey = sk-test-abcdefgh
Model = gpt-4o-mini
BaseURL = %s
LogFile = %s
`, server.URL, logFile))

	env := map[string]string{
		"MMDRAFT_CONFIG":  configPath,
		"MM_SUBJECT":      "Lunch",
		"MM_TO":           "bob@x.com",
		"MM_FROM":         "alice@x.com",
		"MM_CONTENT_TYPE": "text/plain",
	}
	var out bytes.Buffer

	run(context.Background(), func(k string) string { return env[k] }, strings.NewReader("Bob: Want to grab lunch Friday?"), &out)

	doc := decodeDocument(t, &out)
	action := doc.Actions[0]
	if action.Type != mailmate.ActionCreateMessage {
		t.Fatalf("expected a draft, got %s", out.String())
	}
	if action.Body != "Sounds great, see you then!\n\nBob: Want to grab lunch Friday?" {
		t.Errorf("unexpected body %q", action.Body)
	}
	if action.Headers.Subject != "Re: Lunch" {
		t.Errorf("unexpected subject %q", action.Headers.Subject)
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(logged), "invocation_id") || !strings.Contains(string(logged), "Script completed") {
		t.Errorf("expected invocation log entries, got:\n%s", logged)
	}
	if strings.Contains(string(logged), "sk-test-abcdefgh") {
		t.Error("API key must not be logged")
	}
}

func TestRun_MissingConfigPrintsNotify(t *testing.T) {
	env := map[string]string{"MMDRAFT_CONFIG": filepath.Join(t.TempDir(), "missing.ini")}
	var out bytes.Buffer

	run(context.Background(), func(k string) string { return env[k] }, strings.NewReader(""), &out)

	doc := decodeDocument(t, &out)
	if len(doc.Actions) != 1 || doc.Actions[0].Type != mailmate.ActionNotify {
		t.Fatalf("expected one notify action, got %s", out.String())
	}
	if !strings.HasPrefix(doc.Actions[0].Message, "Unexpected error: ") {
		t.Errorf("unexpected message %q", doc.Actions[0].Message)
	}
}
