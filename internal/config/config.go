package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ETLPLAN_LOG_LEVEL
const EnvPrefix = "ETLPLAN"

type (
	Config struct {
		Log  Log
		Plan Plan
	}
)

type Log struct {
	Level string `mapstructure:"level"`
}

type Plan struct {
	Config string   `mapstructure:"config"`
	Output string   `mapstructure:"output"`
	Layout string   `mapstructure:"layout"`
	View   string   `mapstructure:"view"`
	Limit  int      `mapstructure:"limit"`
	Debug  bool     `mapstructure:"debug"`
	Only   []string `mapstructure:"only"`
}

// Init binds cmd's flags and the environment into cfg
func Init(cfg any, cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readCmdVariables(v, cmd); err != nil {
		return fmt.Errorf("failed to read command line variables: %w", err)
	}

	if err := unmarshal(v, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return nil
}

func unmarshal(v *viper.Viper, cfg any) error {
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))

	return v.Unmarshal(cfg, hooks)
}

func readCmdVariables(v *viper.Viper, cmd *cobra.Command) error {
	var err error
	bind := func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = bindErr
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)

	return err
}

// Validate checks settings that flags cannot constrain on their own
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.Log.Level)
	}
	if c.Plan.Config == "" {
		return fmt.Errorf("pipeline config path is required")
	}
	return nil
}
