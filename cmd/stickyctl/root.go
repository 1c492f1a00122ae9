package main

import (
	"log/slog"
	"os"
	"sticky-board/config"
	"sticky-board/store"
	"time"

	"github.com/spf13/cobra"
)

// cli carries the flag values and the open store shared by every subcommand.
type cli struct {
	dbPath  string
	driver  string
	timeout time.Duration
	verbose bool

	store *store.NoteStore
}

func newRootCmd() *cobra.Command {
	return (&cli{}).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stickyctl",
		Short:         "Inspect and maintain a sticky board database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			c.store = store.New(store.Options{
				Driver:  c.driver,
				Path:    c.dbPath,
				Timeout: c.timeout,
				Logger:  logger,
			})
			if err := c.store.Initialize(cmd.Context()); err != nil {
				// PersistentPostRunE does not run after a failed pre-run.
				c.close()
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	root.PersistentFlags().StringVar(&c.dbPath, "db", config.GetEnv("DB_PATH", "./data/sticky-board.db"), "database file")
	root.PersistentFlags().StringVar(&c.driver, "driver", config.GetEnv("DB_DRIVER", "sqlite3"), "database driver (sqlite3 or sqlite)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 5*time.Second, "per-operation store timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.deleteCmd(),
		c.clearCmd(),
		c.exportCmd(),
	)

	return root
}

func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}
