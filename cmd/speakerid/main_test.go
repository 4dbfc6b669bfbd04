package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	return home
}

func TestConfigInitWritesSample(t *testing.T) {
	isolateHome(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if !strings.Contains(string(data), "[identify]") {
		t.Fatalf("sample config missing identify section:\n%s", data)
	}
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	isolateHome(t)
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected overwrite refusal")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite should succeed: %v", err)
	}
}

func TestConfigValidateWithDefaults(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "defaults were used") {
		t.Fatalf("expected defaults notice: %q", out)
	}
}

func TestDepsReportsMissingArtifacts(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, "deps")
	if err == nil {
		t.Fatal("expected failure without the diarizer toolkit installed")
	}
	if !strings.Contains(out, "Diarizer jar") {
		t.Fatalf("expected dependency listing, got: %q", out)
	}
}

func TestIdentifyRejectsMissingInput(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, "identify", filepath.Join(t.TempDir(), "absent.wav"))
	if err == nil {
		t.Fatal("expected failure for missing input file")
	}
}
