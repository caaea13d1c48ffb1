package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ssabab/internal/config"
	"ssabab/internal/logging"
)

var (
	// Global flags
	verbose bool
	apiURL  string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ssabab",
	Short: "ssabab - daily lunch menu reviews from the terminal",
	Long: `ssabab is the terminal client for the SSAFY lunch menu service.

Browse the two daily menus, rate each dish, leave a comment, and see
personal and monthly rating analytics - all without leaving the shell.

Reviews are open 12:00-23:00 KST and only for today's menu.

Run without arguments to show today's menu.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real config lives in ~/.ssabab/config.json.
		_ = godotenv.Load()

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize(config.DefaultConfigDir()); err != nil {
			logger.Warn("category logging unavailable", zap.Error(err))
		}
		logging.Boot("ssabab starting: %v", os.Args[1:])
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's menu
		return runMenu(cmd, args)
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the backend base URL")

	menuCmd.Flags().BoolVarP(&menuWeek, "week", "w", false, "show the whole week (Mon-Fri)")
	reviewCmd.Flags().IntVarP(&reviewMenuChoice, "menu", "m", 1, "which of the two menus to review (1 or 2)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "log in with an access token instead of the browser flow")
	loginCmd.Flags().StringVar(&loginRefreshToken, "refresh-token", "", "refresh token to persist alongside --token")

	reviewCmd.AddCommand(reviewStatusCmd)
	friendsCmd.AddCommand(friendsAddCmd, friendsRemoveCmd)
	statsCmd.AddCommand(statsMonthlyCmd)

	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		statusCmd,
		menuCmd,
		reviewCmd,
		friendsCmd,
		statsCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
