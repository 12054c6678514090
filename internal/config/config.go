package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 REIMPORT_LOG_LEVEL
const EnvPrefix = "REIMPORT"

// Settings 是进程级配置
type Settings struct {
	Log     LogSettings     `mapstructure:"log"`
	Rules   RulesSettings   `mapstructure:"rules"`
	Server  ServerSettings  `mapstructure:"server"`
	Rewrite RewriteSettings `mapstructure:"rewrite"`
}

// LogSettings controls the zap logger
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RulesSettings points at the rules document
type RulesSettings struct {
	// File is a YAML or JSON rules file
	File string `mapstructure:"file"`
	// Path selects the rules inside the file (dotted / gjson path)
	Path string `mapstructure:"path"`
}

// ServerSettings configures `reimport serve`
type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RewriteSettings tunes the pipeline
type RewriteSettings struct {
	// MaxReplacements bounds how often the nodes grown from one import may be replaced
	MaxReplacements int `mapstructure:"max_replacements"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rules.file", "reimport.yaml")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("rewrite.max_replacements", 1000)
}

// Init 初始化配置，加载 .env 和 config.yaml
func Init(cfgFile string) {
	// Load .env file (ignore if not exists)
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	SetDefaults(viper.GetViper())

	// Environment variables
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

// Load decodes the settings held by v
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &s, nil
}
