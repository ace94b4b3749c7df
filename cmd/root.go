package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/alefba/internal/config"
	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/logging"
	"github.com/abhisek/alefba/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "alefba",
	Short: "Persian alphabet and numbers for kids",
	Long:  "Alefba is a terminal app that teaches young children the Persian letters and digits, one island at a time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ALEFBA_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(islandsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every command opens before doing its work.
type env struct {
	cfg   *config.Config
	log   *logrus.Logger
	store *store.Store

	logFile io.Closer
}

// openEnv loads the configuration, starts the log file, opens the store and
// makes sure the catalog is seeded.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load("", cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, logFile, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("start logging: %w", err)
	}
	if err := store.EnsureDir(cfg.Database.Path); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st, logFile: logFile}
	added, err := st.ItemRepo().Seed(cmd.Context(), content.Catalog())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if added > 0 {
		log.WithField("items", added).Info("seeded catalog")
	}
	return e, nil
}

func (e *env) Close() error {
	return errors.Join(e.store.Close(), e.logFile.Close())
}
