package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var verbose bool

// AppContext carries what every subcommand needs after root initialization.
type AppContext struct {
	Logger *zap.SugaredLogger
	Config *CLIConfig
}

type appContextKey struct{}

var globalAppContext *AppContext

var rootCmd = &cobra.Command{
	Use:           "pwcheck",
	Short:         "Password strength and breach exposure checker",
	Long:          "Scores a password's composition and checks it against the Pwned Passwords range API.\nOnly the first five characters of the password's SHA-1 digest ever leave this machine.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".pwcheck")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("PWCHECK")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}

		applyConfigDefaults(cmd)

		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger := l.Sugar()
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debugf("config=%s", used)
		}

		storeAppContext(cmd, &AppContext{Logger: logger, Config: cliConfig})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appCtx := getAppContext(cmd); appCtx != nil && appCtx.Logger != nil {
			_ = appCtx.Logger.Sync()
		}
	},
}

// newLogger keeps the CLI quiet unless --verbose is set; both configs write
// to stderr so stdout stays parseable.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func storeAppContext(cmd *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appContextKey{}, appCtx))
}

func getAppContext(cmd *cobra.Command) *AppContext {
	if ctx := cmd.Context(); ctx != nil {
		if appCtx, ok := ctx.Value(appContextKey{}).(*AppContext); ok {
			return appCtx
		}
	}
	return globalAppContext
}

func Execute() {
	// Interrupts cancel in-flight lookups; raw-mode password entry handles
	// Ctrl-C itself.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pwcheck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")

	rootCmd.PersistentFlags().StringVar(&cliConfig.Breach.BaseURL, "api-url", cliConfig.Breach.BaseURL, "Pwned Passwords range API base URL")
	rootCmd.PersistentFlags().IntVar(&cliConfig.Breach.TimeoutSecs, "timeout", cliConfig.Breach.TimeoutSecs, "breach lookup timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.Breach.Padding, "padding", cliConfig.Breach.Padding, "request padded range responses")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.Breach.Disabled, "offline", cliConfig.Breach.Disabled, "skip the breach lookup")
	rootCmd.PersistentFlags().StringVar(&cliConfig.Strength.DenylistFile, "denylist", "", "file of additional common passwords, one per line")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
