package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"reimport/internal/config"
	"reimport/internal/pkg/logger"
	"reimport/internal/rulefile"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "reimport",
	Short: "Rewrite import sources with regex rules",
	Long: `reimport rewrites the module paths of Starlark load statements with an
ordered list of regex rules. The first matching rule wins and every
replacer of that rule produces one load statement.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("rules", "r", "reimport.yaml", "rules file (YAML or JSON)")
	rootCmd.PersistentFlags().String("rules-path", "", "path of the rules inside the rules file")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("rules.file", rootCmd.PersistentFlags().Lookup("rules"))
	viper.BindPFlag("rules.path", rootCmd.PersistentFlags().Lookup("rules-path"))

	SetupRewriteCmd()
	SetupCheckCmd()
	SetupServeCmd()
}

func initConfig() {
	config.Init(cfgFile)
}

// loadSettings 读取配置并创建全局 logger
func loadSettings() (*config.Settings, *zap.Logger, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewWithOptions(logger.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return settings, log, nil
}

// loadRules 读取规则文件，不做校验
func loadRules(settings *config.Settings) (interface{}, error) {
	if settings.Rules.File == "" {
		return nil, fmt.Errorf("no rules file configured")
	}
	return rulefile.Load(settings.Rules.File, settings.Rules.Path)
}
