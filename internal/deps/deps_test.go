package deps

import (
	"os"
	"path/filepath"
	"testing"

	"speakerid/internal/testsupport"
)

func TestCheckReportsMissingBinary(t *testing.T) {
	statuses := Check([]Requirement{
		{Name: "FFmpeg", Path: "definitely-not-a-real-binary", Kind: KindBinary},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected one status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("missing binary reported as available")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected a detail message")
	}
}

func TestCheckReportsUnconfiguredPath(t *testing.T) {
	statuses := Check([]Requirement{{Name: "Diarizer jar", Kind: KindFile}})
	if statuses[0].Available || statuses[0].Detail != "not configured" {
		t.Fatalf("unexpected status: %+v", statuses[0])
	}
}

func TestCheckFindsFile(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "lium.jar")
	if err := os.WriteFile(jar, []byte("jar"), 0o644); err != nil {
		t.Fatal(err)
	}
	statuses := Check([]Requirement{{Name: "Diarizer jar", Path: jar, Kind: KindFile}})
	if !statuses[0].Available {
		t.Fatalf("expected available, got %+v", statuses[0])
	}
}

func TestCheckRejectsDirectoryAsFile(t *testing.T) {
	statuses := Check([]Requirement{{Name: "Background model", Path: t.TempDir(), Kind: KindFile}})
	if statuses[0].Available {
		t.Fatal("directory should not satisfy a file requirement")
	}
}

func TestRequirementsAgainstStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	statuses := Check(Requirements(cfg))
	if len(statuses) != 5 {
		t.Fatalf("expected 5 requirements, got %d", len(statuses))
	}
	byName := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		byName[s.Name] = s
	}
	for _, name := range []string{"FFmpeg", "FFprobe", "Java"} {
		if !byName[name].Available {
			t.Fatalf("stubbed binary %s should be available: %+v", name, byName[name])
		}
	}
	if byName["Diarizer jar"].Available {
		t.Fatal("jar should be missing before it is written")
	}
	if AllAvailable(statuses) {
		t.Fatal("check must fail while the jar and model are absent")
	}

	testsupport.WriteFile(t, cfg.Tools.DiarizerJar, "jar")
	testsupport.WriteFile(t, cfg.Tools.UBMPath, "gmm")
	if !AllAvailable(Check(Requirements(cfg))) {
		t.Fatal("expected all requirements satisfied")
	}
}

func TestAllAvailableIgnoresOptional(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: true},
		{Name: "Extra", Optional: true, Available: false},
	}
	if !AllAvailable(statuses) {
		t.Fatal("optional failures should not fail the check")
	}
	statuses[0].Available = false
	if AllAvailable(statuses) {
		t.Fatal("required failure must fail the check")
	}
}
