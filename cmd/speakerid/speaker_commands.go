package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"speakerid/internal/media/ffmpeg"
	"speakerid/internal/speaker"
	"speakerid/internal/voicedb/gmm"
)

func newSpeakerCommand(ctx *commandContext) *cobra.Command {
	speakerCmd := &cobra.Command{
		Use:   "speaker",
		Short: "Manage the enrolled voiceprint database",
	}

	speakerCmd.AddCommand(newSpeakerAddCommand(ctx))
	speakerCmd.AddCommand(newSpeakerListCommand(ctx))

	return speakerCmd
}

func newSpeakerAddCommand(ctx *commandContext) *cobra.Command {
	var genderFlag string

	cmd := &cobra.Command{
		Use:   "add <name> <wav> [wav...]",
		Short: "Enroll a speaker from one or more voice recordings",
		Long: `Add trains a voiceprint model from the given recordings and registers it
under the speaker's name. Multiple recordings are concatenated into one
training sample. Recordings should already be mono 16 kHz 16-bit wav;
run "speakerid identify" output through ffmpeg first if they are not.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			name := strings.TrimSpace(args[0])
			gender := speaker.ParseGender(genderFlag)
			recordings := args[1:]
			for _, rec := range recordings {
				if _, err := os.Stat(rec); err != nil {
					return fmt.Errorf("recording %s: %w", rec, err)
				}
			}

			trainingWav := recordings[0]
			if len(recordings) > 1 {
				workDir := filepath.Join(cfg.Paths.WorkDir, uuid.NewString())
				if err := os.MkdirAll(workDir, 0o755); err != nil {
					return fmt.Errorf("create work directory: %w", err)
				}
				defer os.RemoveAll(workDir)

				merged := filepath.Join(workDir, "training.wav")
				if err := ffmpeg.NewClient(cfg.FFmpegBinary()).Merge(cmd.Context(), recordings, merged); err != nil {
					return fmt.Errorf("merge recordings: %w", err)
				}
				trainingWav = merged
			}

			store, err := gmm.OpenStore(cfg.Paths.DBDir)
			if err != nil {
				return fmt.Errorf("open voiceprint database: %w", err)
			}
			defer store.Close()

			trainer := gmm.NewMTrain(cfg.JavaBinary(), cfg.Tools.DiarizerJar, cfg.Tools.UBMPath)
			enroller := gmm.NewEnroller(cfg.Paths.DBDir, store, trainer, logger)

			enrolled, err := enroller.Enroll(cmd.Context(), name, gender, trainingWav)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrolled %s (%s) with model %s\n",
				enrolled.Name, enrolled.Gender, enrolled.ModelPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&genderFlag, "gender", "g", "U", "Speaker gender partition: M, F, or U")
	return cmd
}

func newSpeakerListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrolled speakers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := gmm.OpenStore(cfg.Paths.DBDir)
			if err != nil {
				return fmt.Errorf("open voiceprint database: %w", err)
			}
			defer store.Close()

			speakers, err := store.ListSpeakers(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, speakers)
			}

			out := cmd.OutOrStdout()
			if len(speakers) == 0 {
				fmt.Fprintln(out, "No speakers enrolled")
				return nil
			}
			rows := make([][]string, 0, len(speakers))
			for _, s := range speakers {
				rows = append(rows, []string{
					s.Name,
					s.Gender.String(),
					s.ModelPath,
					s.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Gender", "Model", "Enrolled"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit speakers as JSON")
	return cmd
}
