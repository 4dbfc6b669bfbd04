package gmm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"speakerid/internal/logging"
	"speakerid/internal/speaker"
)

// Trainer builds a speaker model file from a training wav. Implemented by
// the external model-training process; injectable for tests.
type Trainer interface {
	Train(ctx context.Context, trainingWav, modelDest string) error
}

// MTrain runs the two-step LIUM training recipe: initialize a model from
// the universal background model, then MAP-adapt it to the speaker's audio.
type MTrain struct {
	java   string
	jar    string
	ubm    string
	runner func(ctx context.Context, name string, args ...string) error
}

// NewMTrain builds an external trainer around the diarizer jar and UBM model.
func NewMTrain(java, jar, ubm string) *MTrain {
	java = strings.TrimSpace(java)
	if java == "" {
		java = "java"
	}
	return &MTrain{java: java, jar: jar, ubm: ubm}
}

// WithRunner sets a custom command runner (for testing).
func (m *MTrain) WithRunner(runner func(ctx context.Context, name string, args ...string) error) *MTrain {
	if runner != nil {
		m.runner = runner
	}
	return m
}

// Train implements Trainer.
func (m *MTrain) Train(ctx context.Context, trainingWav, modelDest string) error {
	initModel := strings.TrimSuffix(modelDest, filepath.Ext(modelDest)) + ".init.gmm"
	initArgs := []string{
		"-Xmx256m",
		"-cp", m.jar,
		"fr.lium.spkDiarization.programs.MTrainInit",
		"--fInputMask=" + trainingWav,
		"--emInitMethod=copy",
		"--tInputMask=" + m.ubm,
		"--tOutputMask=" + initModel,
	}
	if err := m.run(ctx, m.java, initArgs...); err != nil {
		return fmt.Errorf("train init: %w", err)
	}
	defer os.Remove(initModel)

	mapArgs := []string{
		"-Xmx256m",
		"-cp", m.jar,
		"fr.lium.spkDiarization.programs.MTrainMAP",
		"--fInputMask=" + trainingWav,
		"--emCtrl=1,5,0.01",
		"--varCtrl=0.01,10.0",
		"--tInputMask=" + initModel,
		"--tOutputMask=" + modelDest,
	}
	if err := m.run(ctx, m.java, mapArgs...); err != nil {
		return fmt.Errorf("train map: %w", err)
	}
	return nil
}

func (m *MTrain) run(ctx context.Context, name string, args ...string) error {
	if m.runner != nil {
		return m.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Enroller trains and registers new speaker models. The database directory
// is flock-guarded so concurrent enrollments cannot race on model paths.
type Enroller struct {
	dbDir   string
	store   *Store
	trainer Trainer
	logger  *slog.Logger
}

// NewEnroller builds an enroller over the registry store.
func NewEnroller(dbDir string, store *Store, trainer Trainer, logger *slog.Logger) *Enroller {
	return &Enroller{
		dbDir:   dbDir,
		store:   store,
		trainer: trainer,
		logger:  logging.NewComponentLogger(logger, "enroll"),
	}
}

// Enroll trains a model from trainingWav and registers it under the
// speaker's name in the gender partition. The model path gets a numeric
// suffix when the name is already taken.
func (e *Enroller) Enroll(ctx context.Context, name string, gender speaker.Gender, trainingWav string) (*Speaker, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == speaker.UnknownName {
		return nil, fmt.Errorf("enroll: invalid speaker name %q", name)
	}

	lock := flock.New(filepath.Join(e.dbDir, ".enroll.lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("enroll: lock database: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	partition := filepath.Join(e.dbDir, gender.String())
	if err := os.MkdirAll(partition, 0o755); err != nil {
		return nil, fmt.Errorf("enroll: ensure partition: %w", err)
	}

	modelDest := e.nextModelPath(partition, name)
	if err := e.trainer.Train(ctx, trainingWav, modelDest); err != nil {
		return nil, fmt.Errorf("enroll %s: %w", name, err)
	}

	sp, err := e.store.AddSpeaker(ctx, name, gender, modelDest)
	if err != nil {
		return nil, fmt.Errorf("enroll %s: %w", name, err)
	}
	e.logger.Info("speaker enrolled",
		logging.String(logging.FieldSpeaker, name),
		logging.String("gender", gender.String()),
		logging.String("model", modelDest),
	)
	return sp, nil
}

func (e *Enroller) nextModelPath(partition, name string) string {
	candidate := filepath.Join(partition, name+".gmm")
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(partition, fmt.Sprintf("%s%d.gmm", name, i))
	}
}
