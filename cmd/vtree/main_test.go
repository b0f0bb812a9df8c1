package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	for _, args := range [][]string{
		{"demo", "--config", t.TempDir()},
		{"demo", "--config", t.TempDir(), "--strategy", "keyed"},
		{"demo", "--config", t.TempDir(), "--view", "counter"},
	} {
		t.Run(strings.Join(args[3:], " "), func(t *testing.T) {
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("demo: %v\n%s", err, out)
			}
			if !strings.Contains(out, "mirror in sync") {
				t.Errorf("output missing sync line:\n%s", out)
			}
			if !strings.Contains(out, "cycle 1  mount") {
				t.Errorf("output missing mount cycle:\n%s", out)
			}
		})
	}
}

func TestDemoTodoFinalHTML(t *testing.T) {
	out, err := execute(t, "demo", "--config", t.TempDir(), "--strategy", "keyed")
	if err != nil {
		t.Fatal(err)
	}
	want := `<ul><li><span>bread</span>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %s:\n%s", want, out)
	}
	if !strings.Contains(out, "10 cycles") {
		t.Errorf("output missing cycle count:\n%s", out)
	}
}

func TestDemoSnapshots(t *testing.T) {
	dir := t.TempDir()
	snaps := filepath.Join(dir, "snaps")
	cfg := config.New()
	cfg.Snapshot = config.SnapshotConfig{Backend: snapshot.BackendDir, Dir: snaps}
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "demo", "--config", dir, "--view", "counter"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(snaps, snapshot.Key(5)))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<p class="count">0</p>`) {
		t.Errorf("snapshot 5 = %s", data)
	}
}

func TestDemoErrors(t *testing.T) {
	if _, err := execute(t, "demo", "--config", t.TempDir(), "--view", "nope"); err == nil {
		t.Error("unknown view: want error")
	}
	if _, err := execute(t, "demo", "--config", t.TempDir(), "--strategy", "random"); err == nil {
		t.Error("unknown strategy: want error")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(`{"log": {"format": "xml"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "demo", "--config", dir); err == nil {
		t.Error("invalid config: want error")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != version+"\n" {
		t.Errorf("version --short = %q", out)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Format: "json"}, &buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not one JSON record: %v: %s", err, buf.String())
	}
	if rec["msg"] != "shown" || rec["k"] != float64(1) {
		t.Errorf("record = %v", rec)
	}

	buf.Reset()
	newLogger(config.LogConfig{Format: "text"}, &buf, slog.LevelDebug).Debug("text")
	if !strings.Contains(buf.String(), "msg=text") {
		t.Errorf("text record = %q", buf.String())
	}
}

func TestServeWiring(t *testing.T) {
	cfg := config.New()
	st, err := newStack(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	srv, err := newServer(context.Background(), st, "counter")
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `<p class="count">0</p>`) {
		t.Errorf("GET / = %s", body)
	}

	resp, err = ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `vtree_cycles_total{action="mount",status="success"} 1`) {
		t.Errorf("/metrics missing mount cycle:\n%s", body)
	}

	if _, err := newServer(context.Background(), st, "nope"); err == nil {
		t.Error("unknown view: want error")
	}
}
