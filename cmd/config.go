package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
	consts "github.com/khanhnv2901/pwcheck/internal/shared/constants"
	"github.com/khanhnv2901/pwcheck/internal/strength"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Breach   BreachConfig
	Strength StrengthConfig
}

// BreachConfig groups range API settings.
type BreachConfig struct {
	BaseURL     string
	TimeoutSecs int
	RateLimit   int
	Padding     bool
	Disabled    bool
}

// StrengthConfig groups scoring thresholds. Zero values mean "use the
// built-in default".
type StrengthConfig struct {
	MinLength      int
	ExtendedLength int
	SpecialChars   string
	DenylistFile   string
}

type defaultOverrides struct {
	BaseURL        string
	TimeoutSecs    *int
	RateLimit      *int
	Padding        *bool
	Disabled       *bool
	MinLength      *int
	ExtendedLength *int
	SpecialChars   string
	DenylistFile   string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Breach: BreachConfig{
			BaseURL:     consts.DefaultRangeBaseURL,
			TimeoutSecs: int(consts.DefaultLookupTimeout / time.Second),
			RateLimit:   consts.DefaultLookupRate,
		},
		Strength: StrengthConfig{
			MinLength:      consts.MinLength,
			ExtendedLength: consts.ExtendedLength,
			SpecialChars:   consts.SpecialChars,
		},
	}
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("breach.base_url") {
		overrides.BaseURL = viper.GetString("breach.base_url")
	}
	if viper.IsSet("breach.timeout_secs") {
		val := viper.GetInt("breach.timeout_secs")
		overrides.TimeoutSecs = &val
	}
	if viper.IsSet("breach.rate_limit") {
		val := viper.GetInt("breach.rate_limit")
		overrides.RateLimit = &val
	}
	if viper.IsSet("breach.padding") {
		val := viper.GetBool("breach.padding")
		overrides.Padding = &val
	}
	if viper.IsSet("breach.disabled") {
		val := viper.GetBool("breach.disabled")
		overrides.Disabled = &val
	}
	if viper.IsSet("strength.min_length") {
		val := viper.GetInt("strength.min_length")
		overrides.MinLength = &val
	}
	if viper.IsSet("strength.extended_length") {
		val := viper.GetInt("strength.extended_length")
		overrides.ExtendedLength = &val
	}
	if viper.IsSet("strength.special_chars") {
		overrides.SpecialChars = viper.GetString("strength.special_chars")
	}
	if viper.IsSet("strength.denylist_file") {
		overrides.DenylistFile = viper.GetString("strength.denylist_file")
	}

	return overrides
}

// applyConfigDefaults merges config file and environment values into the
// runtime config when the user did not explicitly set the matching flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadDefaultOverrides()
	flags := cmd.Flags()

	if overrides.BaseURL != "" {
		applyStringDefault(flags, "api-url", overrides.BaseURL, func(v string) {
			cliConfig.Breach.BaseURL = v
		})
	}
	if overrides.TimeoutSecs != nil {
		applyIntDefault(flags, "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.Breach.TimeoutSecs = v
		})
	}
	if overrides.Padding != nil {
		applyBoolDefault(flags, "padding", *overrides.Padding, func(v bool) {
			cliConfig.Breach.Padding = v
		})
	}
	if overrides.Disabled != nil {
		applyBoolDefault(flags, "offline", *overrides.Disabled, func(v bool) {
			cliConfig.Breach.Disabled = v
		})
	}
	if overrides.DenylistFile != "" {
		applyStringDefault(flags, "denylist", overrides.DenylistFile, func(v string) {
			cliConfig.Strength.DenylistFile = v
		})
	}

	// No flags for these; config is the only source.
	if overrides.RateLimit != nil {
		cliConfig.Breach.RateLimit = *overrides.RateLimit
	}
	if overrides.MinLength != nil {
		cliConfig.Strength.MinLength = *overrides.MinLength
	}
	if overrides.ExtendedLength != nil {
		cliConfig.Strength.ExtendedLength = *overrides.ExtendedLength
	}
	if overrides.SpecialChars != "" {
		cliConfig.Strength.SpecialChars = overrides.SpecialChars
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

// strengthConfig resolves the scorer tables, merging an optional denylist
// file into the embedded list.
func (c *CLIConfig) strengthConfig() (strength.Config, error) {
	cfg := strength.DefaultConfig()
	if c.Strength.MinLength > 0 {
		cfg.MinLength = c.Strength.MinLength
	}
	if c.Strength.ExtendedLength > 0 {
		cfg.ExtendedLength = c.Strength.ExtendedLength
	}
	if c.Strength.SpecialChars != "" {
		cfg.SpecialChars = c.Strength.SpecialChars
	}

	if c.Strength.DenylistFile != "" {
		f, err := os.Open(c.Strength.DenylistFile)
		if err != nil {
			return strength.Config{}, &DenylistError{Path: c.Strength.DenylistFile, Err: err}
		}
		defer f.Close()

		extra, err := strength.LoadDenylist(f)
		if err != nil {
			return strength.Config{}, &DenylistError{Path: c.Strength.DenylistFile, Err: err}
		}
		for k := range extra {
			cfg.Denylist[k] = struct{}{}
		}
	}
	return cfg, nil
}

func (c *CLIConfig) newBreachClient(appCtx *AppContext) *breach.Client {
	opts := []breach.Option{
		breach.WithBaseURL(c.Breach.BaseURL),
		breach.WithTimeout(time.Duration(c.Breach.TimeoutSecs) * time.Second),
		breach.WithRateLimit(c.Breach.RateLimit, c.Breach.RateLimit),
		breach.WithPadding(c.Breach.Padding),
		breach.WithUserAgent(fmt.Sprintf("pwcheck/%s", Version)),
	}
	if appCtx != nil && appCtx.Logger != nil {
		opts = append(opts, breach.WithLogger(appCtx.Logger.Desugar().Named("breach")))
	}
	return breach.New(opts...)
}

// newEvaluator wires the scorer and, unless running offline, the breach
// client. The client is returned separately for digest-only lookups.
func newEvaluator(appCtx *AppContext, withEstimate bool) (*evaluator.Evaluator, *breach.Client, error) {
	cfg := appCtx.Config
	strengthCfg, err := cfg.strengthConfig()
	if err != nil {
		return nil, nil, err
	}
	scorer, err := strength.NewScorer(strengthCfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []evaluator.Option{evaluator.WithEstimate(withEstimate)}
	if appCtx.Logger != nil {
		opts = append(opts, evaluator.WithLogger(appCtx.Logger.Desugar()))
	}

	if cfg.Breach.Disabled {
		return evaluator.New(scorer, nil, opts...), nil, nil
	}
	client := cfg.newBreachClient(appCtx)
	return evaluator.New(scorer, client, opts...), client, nil
}
