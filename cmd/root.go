package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/flagsync/internal/app"
	"github.com/olusolaa/flagsync/internal/config"
	apperrors "github.com/olusolaa/flagsync/internal/errors"
)

var (
	cfgFile      string
	envFile      string
	logLevel     string
	logFormat    string
	organization string
	environment  string
	kinds        []string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "flagsync",
	Short: "Reconciles declared feature toggles and accounts with a flag service.",
	Long: `flagsync loads toggle and account declarations written by many teams,
compares them with the live state of an Unleash compatible flag service and
creates, updates or removes whatever is needed to make the two match.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .flagsync.yaml in the working or home directory)")
	flags.StringVar(&envFile, "env-file", ".env", "File of FLAGSYNC_* variables to load when present")
	flags.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	flags.StringVarP(&organization, "organization", "o", "", "Organization whose declarations are reconciled")
	flags.StringVarP(&environment, "environment", "e", "", "Target environment of the flag service")
	flags.StringSliceVar(&kinds, "kinds", nil, "Resource kinds to process (toggles, accounts); default is all")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored console output")

	bindFlag("settings.log_level", "log-level")
	bindFlag("settings.log_format", "log-format")
	bindFlag("target.organization", "organization")
	bindFlag("target.environment", "environment")
	bindFlag("kinds", "kinds")
	bindFlag("settings.no_color", "no-color")

	viper.SetEnvPrefix("FLAGSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	cobra.CheckErr(config.BindEnv(viper.GetViper()))

	rootCmd.AddCommand(newApplyCmd(), newPlanCmd(), newLintCmd(), newScanCmd())
}

func bindFlag(key, flag string) {
	cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)))
}

func initializeConfig(cmd *cobra.Command) error {
	if loaded, err := config.LoadDotEnv(envFile); err != nil {
		return err
	} else if loaded {
		fmt.Fprintln(os.Stderr, "Loaded environment from", envFile)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".flagsync")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
		} else {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}

	return nil
}

// buildApplication bootstraps the application and prints initialization
// failures the way every subcommand reports them.
func buildApplication(cmd *cobra.Command, mode app.Mode) (*app.Application, error) {
	application, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper(), mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", err)
		if appErr := (*apperrors.AppError)(nil); errors.As(err, &appErr) {
			if appErr.IsUserFacing {
				fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
				if appErr.SuggestedAction != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
				}
			}
		}
		return nil, err
	}
	return application, nil
}

func printRunError(err error) {
	userMsg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
	if resources := apperrors.GetResources(err); len(resources) > 0 {
		fmt.Fprintf(os.Stderr, "Resources: %s\n", strings.Join(resources, ", "))
	}
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
}
