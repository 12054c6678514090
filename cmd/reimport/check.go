package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reimport/internal/core/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every rule of the rules file",
	Long: `Load the rules file and validate every rule up front: shape, test
pattern and replacers. Rewriting itself only validates the rules it reaches.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, log, err := loadSettings()
		if err != nil {
			return err
		}
		defer log.Sync()

		rules, err := loadRules(settings)
		if err != nil {
			return err
		}

		if err := engine.ValidateRules(rules); err != nil {
			log.Error("Invalid Rules", zap.String("file", settings.Rules.File), zap.Error(err))
			return fmt.Errorf("%s:%w", settings.Rules.File, err)
		}

		items, _ := engine.NormalizeOptions(rules)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rule(s) ok\n", settings.Rules.File, len(items))
		return nil
	},
}

func SetupCheckCmd() {
	rootCmd.AddCommand(checkCmd)
}
