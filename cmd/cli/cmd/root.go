package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mat-analysis/internal/service"
	"github.com/mat-analysis/internal/storage"
	"github.com/mat-analysis/pkg/config"
	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/telemetry"
	"github.com/mat-analysis/pkg/utils"
)

var (
	// Global flags
	configPath string
	verbose    bool
	inputFile  string
	storageKey string

	cfg       *config.Config
	logger    utils.Logger
	logCloser io.Closer
	shutdown  telemetry.ShutdownFunc
	svc       *service.Service
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mat-analysis",
	Short: "Inspect OpenModelica MAT result files",
	Long: `mat-analysis reads OpenModelica simulation result files (MAT v4,
optionally gzip or zstd compressed), resolves every variable to its sample
series and lets you browse, search, summarize, plot and export them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			level = utils.LevelDebug
		}
		if cfg.Log.OutputPath != "" {
			l, closer, err := utils.NewFileLogger(level, cfg.Log.OutputPath)
			if err != nil {
				return err
			}
			logger, logCloser = l, closer
		} else {
			logger = utils.NewDefaultLogger(level, cmd.ErrOrStderr())
		}
		utils.SetGlobalLogger(logger)

		shutdown, err = telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("tracing disabled: %v", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc != nil {
			if err := svc.Close(); err != nil {
				logger.Warn("failed to close service: %v", err)
			}
			svc = nil
		}
		if shutdown != nil {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("failed to flush traces: %v", err)
			}
			shutdown = nil
		}
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	binName := BinName()
	rootCmd.Example = `  # Show what a result file contains
  ` + binName + ` info -i ./Model_res.mat

  # Find variables and print their statistics
  ` + binName + ` search volt -i ./Model_res.mat
  ` + binName + ` stats bus.v[1] "bus.v[1] - bus.v[2]" -i ./Model_res.mat --format yaml

  # Export aligned columns to a compressed spreadsheet
  ` + binName + ` export bus.v[1] motor.speed -i ./Model_res.mat -o out.xlsx --format xlsx

  # Load from object storage
  ` + binName + ` info --key runs/2024-01-01/Model_res.mat.zst`
}

// addInputFlags registers the flags that select the result file.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Result file to load, - for stdin")
	cmd.Flags().StringVar(&storageKey, "key", "", "Load the result file from storage instead")
	cmd.MarkFlagsMutuallyExclusive("input", "key")
	cmd.MarkFlagsOneRequired("input", "key")
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	if logger == nil {
		return &utils.NullLogger{}
	}
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}

// newService builds the service from configuration. Storage is attached
// only when a command needs it.
func newService(withStorage bool) (*service.Service, error) {
	var opts []service.Option
	if withStorage {
		st, err := storage.NewStorage(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithStorage(st))
	}

	s, err := service.NewFromConfig(cfg, GetLogger(), opts...)
	if err != nil {
		return nil, err
	}
	svc = s
	return s, nil
}

// loadInput creates the service and loads the selected result file.
func loadInput(cmd *cobra.Command, withStorage bool) (*service.Service, error) {
	s, err := newService(withStorage || storageKey != "")
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var res *model.LoadResult
	switch {
	case storageKey != "":
		res = s.LoadFromStorage(ctx, storageKey)
	case inputFile == "-":
		res = s.LoadReader(ctx, "stdin", cmd.InOrStdin())
	default:
		res = <-s.LoadAsync(ctx, inputFile)
	}
	if !res.Success {
		return nil, fmt.Errorf("failed to load %s: %s", res.Source, res.Message)
	}
	GetLogger().Debug("loaded %s in %v", res.Source, res.Duration)
	return s, nil
}
