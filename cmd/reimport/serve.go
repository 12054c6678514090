package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reimport/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reimport server",
	Long:  `Start the reimport HTTP server and rewrite Starlark sources posted to /v1/rewrite.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 初始化全局 logger
		settings, globalLogger, err := loadSettings()
		if err != nil {
			return err
		}
		defer globalLogger.Sync()

		rules, err := loadRules(settings)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
		srv := server.NewHTTPServer(addr, rules, settings.Rewrite.MaxReplacements, globalLogger)
		return srv.Start()
	},
}

func SetupServeCmd() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Server port")
	serveCmd.Flags().StringP("host", "H", "0.0.0.0", "Server host")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}
