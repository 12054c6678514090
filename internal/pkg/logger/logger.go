package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 控制 logger 的构建
type Options struct {
	// Level: debug, info, warn, error；未知值按 info 处理
	Level string
	// Format: json（默认）或 console
	Format string
	// Output 日志输出路径，默认 stderr，CLI 的 stdout 留给改写结果
	Output string
	// CallerSkip 跳过的调用栈层数
	CallerSkip int
}

// New 创建一个新的 zap logger 实例
// level: 日志级别 (debug, info, warn, error)
func New(level string) (*zap.Logger, error) {
	return NewWithOptions(Options{Level: level})
}

// NewWithCallerSkip 创建一个新的 zap logger 实例，并设置 caller skip
func NewWithCallerSkip(level string, skip int) (*zap.Logger, error) {
	return NewWithOptions(Options{Level: level, CallerSkip: skip})
}

// ParseLevel 把字符串转换成 zap 日志级别
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// NewWithOptions 按 Options 创建 logger
func NewWithOptions(opts Options) (*zap.Logger, error) {
	// 使用生产配置（JSON编码）
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	if opts.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	output := opts.Output
	if output == "" {
		output = "stderr"
	}
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}

	// 自定义时间格式
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableCaller = false

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return WithCallerSkip(logger, opts.CallerSkip), nil
}

// WithCallerSkip 为现有的 logger 添加 caller skip
func WithCallerSkip(logger *zap.Logger, skip int) *zap.Logger {
	if logger == nil || skip <= 0 {
		return logger
	}
	return logger.WithOptions(zap.AddCallerSkip(skip))
}
