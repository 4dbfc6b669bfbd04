package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"speakerid/internal/diarize"
	"speakerid/internal/identify"
	"speakerid/internal/media/ffmpeg"
	"speakerid/internal/media/wav"
	"speakerid/internal/pipeline"
	"speakerid/internal/report"
	"speakerid/internal/trim"
	"speakerid/internal/voicedb/gmm"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var tableOutput bool
	var srtPath string
	var keepWork bool

	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Diarize an audio file and identify its speakers",
		Long: `Identify runs the full pipeline on one audio file: normalize it to mono
16 kHz 16-bit wav, split it into speaker clusters, and match each cluster
against the enrolled voiceprint database.

The default output is one "<label>:<speaker>" line per cluster in
diarization order. Clusters without a matching voiceprint read "unknown".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			workDir := filepath.Join(cfg.Paths.WorkDir, uuid.NewString())
			if err := os.MkdirAll(workDir, 0o755); err != nil {
				return fmt.Errorf("create work directory: %w", err)
			}
			if !keepWork {
				defer os.RemoveAll(workDir)
			}

			store, err := gmm.OpenStore(cfg.Paths.DBDir)
			if err != nil {
				return fmt.Errorf("open voiceprint database: %w", err)
			}
			defer store.Close()

			ffmpegClient := ffmpeg.NewClient(cfg.FFmpegBinary())
			normalizer := wav.NewNormalizer(cfg.FFprobeBinary(), ffmpegClient, cfg.Transcode.Strict, logger)
			diarizer := diarize.NewLIUM(cfg.JavaBinary(), cfg.Tools.DiarizerJar, logger)
			trimmer := trim.New(ffmpegClient, ffmpegClient, workDir, logger)
			scorer := gmm.NewMScore(cfg.JavaBinary(), cfg.Tools.DiarizerJar, cfg.Tools.UBMPath)
			db := gmm.NewDB(store, scorer, logger)
			engine := identify.NewEngine(db, cfg.Identify.Threshold, cfg.Identify.Margin, logger)

			run := pipeline.New(args[0], normalizer, diarizer, trimmer, engine, logger)
			assignments, err := run.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				if err := writeJSON(cmd, assignments); err != nil {
					return err
				}
			case tableOutput:
				fmt.Fprintln(out, report.Table(assignments))
			default:
				fmt.Fprint(out, report.Lines(assignments))
			}

			if srtPath != "" {
				if err := os.WriteFile(srtPath, []byte(report.SRT(run.Clusters())), 0o644); err != nil {
					return fmt.Errorf("write subtitles: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit assignments as JSON")
	cmd.Flags().BoolVar(&tableOutput, "table", false, "Emit assignments as a table")
	cmd.Flags().StringVar(&srtPath, "srt", "", "Write per-segment subtitles to the given path")
	cmd.Flags().BoolVar(&keepWork, "keep-work", false, "Keep the per-run work directory for inspection")
	return cmd
}
