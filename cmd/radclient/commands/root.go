package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrewz1/radius/internal/config"
)

var (
	// cfgFile is the path to a YAML configuration file (optional; flags and
	// environment variables can supply every setting on their own).
	cfgFile string

	// cfg is the loaded configuration, populated in PersistentPreRunE.
	cfg *config.Config

	// logger is the shared structured logger, configured from cfg.Log.
	logger *slog.Logger

	// flag overrides layered on top of the loaded config.
	flagServerAddr string
	flagSecret     string
	flagDictionary string
	flagRetryCount int
	flagTimeoutMS  int
)

var rootCmd = &cobra.Command{
	Use:   "radclient",
	Short: "CLI client for the radius library",
	Long:  "radclient sends RADIUS Access/Accounting/CoA/Disconnect requests and reports the response.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(loaded)
		if err := config.Validate(loaded); err != nil {
			return err
		}
		cfg = loaded

		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: config.ParseLogLevel(cfg.Log.Level),
		})
		if cfg.Log.Format == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: config.ParseLogLevel(cfg.Log.Level),
			})
		}
		logger = slog.New(handler)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func applyFlagOverrides(c *config.Config) {
	if flagServerAddr != "" {
		c.Server.Addr = flagServerAddr
	}
	if flagSecret != "" {
		c.Server.Secret = flagSecret
	}
	if flagDictionary != "" {
		c.Dictionary = flagDictionary
	}
	if flagRetryCount > 0 {
		c.Server.RetryCount = flagRetryCount
	}
	if flagTimeoutMS > 0 {
		c.Server.Timeout = msToDuration(flagTimeoutMS)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagServerAddr, "server", "", "RADIUS server address (host:port)")
	rootCmd.PersistentFlags().StringVar(&flagSecret, "secret", "", "shared secret")
	rootCmd.PersistentFlags().StringVar(&flagDictionary, "dictionary", "", "path to a dictionary file ($INCLUDE-aware); empty uses the bundled default")
	rootCmd.PersistentFlags().IntVar(&flagRetryCount, "retries", 0, "retry count (0 keeps the configured/default value)")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutMS, "timeout-ms", 0, "exchange timeout in milliseconds (0 keeps the configured/default value)")

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(acctCmd())
	rootCmd.AddCommand(coaCmd())
	rootCmd.AddCommand(disconnectCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
