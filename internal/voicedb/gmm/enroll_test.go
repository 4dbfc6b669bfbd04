package gmm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"speakerid/internal/logging"
	"speakerid/internal/speaker"
)

type stubTrainer struct {
	fail  bool
	calls []string
}

func (s *stubTrainer) Train(_ context.Context, _, modelDest string) error {
	s.calls = append(s.calls, modelDest)
	if s.fail {
		return errors.New("training failed")
	}
	return os.WriteFile(modelDest, []byte("gmm"), 0o644)
}

func TestEnrollRegistersSpeaker(t *testing.T) {
	dbDir := t.TempDir()
	store, err := OpenStore(dbDir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	trainer := &stubTrainer{}
	enroller := NewEnroller(dbDir, store, trainer, logging.NewNop())

	sp, err := enroller.Enroll(context.Background(), "alice", speaker.GenderFemale, "train.wav")
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	want := filepath.Join(dbDir, "F", "alice.gmm")
	if sp.ModelPath != want {
		t.Fatalf("unexpected model path: %q want %q", sp.ModelPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected model file: %v", err)
	}

	rows, err := store.SpeakersByGender(context.Background(), speaker.GenderFemale)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected registered row, got %v err=%v", rows, err)
	}
}

func TestEnrollSuffixesTakenNames(t *testing.T) {
	dbDir := t.TempDir()
	store, err := OpenStore(dbDir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	enroller := NewEnroller(dbDir, store, &stubTrainer{}, logging.NewNop())
	ctx := context.Background()

	first, err := enroller.Enroll(ctx, "alice", speaker.GenderFemale, "a.wav")
	if err != nil {
		t.Fatalf("first Enroll: %v", err)
	}
	second, err := enroller.Enroll(ctx, "alice", speaker.GenderFemale, "b.wav")
	if err != nil {
		t.Fatalf("second Enroll: %v", err)
	}
	if first.ModelPath == second.ModelPath {
		t.Fatalf("expected distinct model paths, both %q", first.ModelPath)
	}
	if filepath.Base(second.ModelPath) != "alice1.gmm" {
		t.Fatalf("unexpected suffixed path: %q", second.ModelPath)
	}
}

func TestEnrollTrainingFailureDoesNotRegister(t *testing.T) {
	dbDir := t.TempDir()
	store, err := OpenStore(dbDir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	enroller := NewEnroller(dbDir, store, &stubTrainer{fail: true}, logging.NewNop())
	if _, err := enroller.Enroll(context.Background(), "alice", speaker.GenderFemale, "a.wav"); err == nil {
		t.Fatal("expected training failure")
	}

	rows, err := store.ListSpeakers(context.Background())
	if err != nil {
		t.Fatalf("ListSpeakers: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("failed enrollment must not register, got %v", rows)
	}
}

func TestEnrollRejectsReservedName(t *testing.T) {
	dbDir := t.TempDir()
	store, err := OpenStore(dbDir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	enroller := NewEnroller(dbDir, store, &stubTrainer{}, logging.NewNop())
	if _, err := enroller.Enroll(context.Background(), speaker.UnknownName, speaker.GenderMale, "a.wav"); err == nil {
		t.Fatal("expected error for reserved name")
	}
}
