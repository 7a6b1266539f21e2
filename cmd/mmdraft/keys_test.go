package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/leofalp/mmdraft/core/mailmate"
	"github.com/leofalp/mmdraft/internal/credential"
)

func arrayStore(ring keyring.Keyring) func() (secretStore, error) {
	return func() (secretStore, error) { return credential.New(ring), nil }
}

// execute runs the command tree with args and returns stdout, stderr and
// the error ExecuteContext reported.
func execute(t *testing.T, args []string, stdin string, getenv func(string) string, openStore func() (secretStore, error)) (string, string, error) {
	t.Helper()
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(getenv, openStore)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestKeyCommands_SetAndDelete(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)

	out, _, err := execute(t, []string{"set-key", "openai"}, "sk-live-123\n", nil, arrayStore(ring))
	if err != nil {
		t.Fatalf("set-key failed: %v", err)
	}
	if !strings.Contains(out, "ApiKey = keyring:openai") {
		t.Errorf("expected the config hint, got %q", out)
	}

	got, err := credential.New(ring).Get("openai")
	if err != nil || got != "sk-live-123" {
		t.Fatalf("expected stored secret, got %q, %v", got, err)
	}

	if _, _, err := execute(t, []string{"delete-key", "openai"}, "", nil, arrayStore(ring)); err != nil {
		t.Fatalf("delete-key failed: %v", err)
	}
	if _, err := credential.New(ring).Get("openai"); !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Errorf("expected the item to be gone, got %v", err)
	}
}

func TestKeyCommands_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		open    func() (secretStore, error)
		wantErr string
	}{
		{name: "missing item", args: []string{"set-key"}, wantErr: "accepts 1 arg"},
		{name: "extra args", args: []string{"delete-key", "a", "b"}, wantErr: "accepts 1 arg"},
		{name: "blank item", args: []string{"delete-key", " "}, wantErr: "must not be empty"},
		{name: "empty secret", args: []string{"set-key", "openai"}, stdin: "\n", wantErr: "stdin is empty"},
		{
			name:    "keyring unavailable",
			args:    []string{"set-key", "openai"},
			stdin:   "sk\n",
			open:    func() (secretStore, error) { return nil, errors.New("opening keyring: locked") },
			wantErr: "locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open := tt.open
			if open == nil {
				open = arrayStore(keyring.NewArrayKeyring(nil))
			}

			_, stderr, err := execute(t, tt.args, tt.stdin, nil, open)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("expected the error on stderr, got %q", stderr)
			}
		})
	}
}

func TestRootCmd_RunsHookWithoutArguments(t *testing.T) {
	opened := false
	open := func() (secretStore, error) { opened = true; return nil, errors.New("unused") }
	env := map[string]string{"MMDRAFT_CONFIG": filepath.Join(t.TempDir(), "absent.ini")}

	out, _, err := execute(t, nil, "hello", func(key string) string { return env[key] }, open)
	if err != nil {
		t.Fatalf("the hook must not fail, got %v", err)
	}
	if opened {
		t.Error("the hook must not open the keyring for writing")
	}

	var doc mailmate.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not an action document: %v\n%s", err, out)
	}
	if len(doc.Actions) != 1 || doc.Actions[0].Type != mailmate.ActionNotify {
		t.Errorf("expected a single notify action, got %s", out)
	}
}
