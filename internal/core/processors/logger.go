package processors

import (
	"time"

	"go.uber.org/zap"

	"reimport/internal/core"
)

// ImportLogger 是一个记录 import 访问日志的处理器
type ImportLogger struct {
	name     string
	priority int
}

// NewImportLogger 创建一个新的 import 日志处理器
func NewImportLogger() *ImportLogger {
	return &ImportLogger{
		name:     "import-logger",
		priority: -100, // 必须是第一个执行
	}
}

// Name 返回处理器名称
func (r *ImportLogger) Name() string {
	return r.name
}

// Priority 返回处理器优先级
func (r *ImportLogger) Priority() int {
	return r.priority
}

// OnImport 记录每一个被访问的 import，不做修改
func (r *ImportLogger) OnImport(ctx *core.RewriteContext, node *core.ImportNode) ([]*core.ImportNode, error) {
	// run_id 和 file 已经在创建 ctx.Log 时通过 With() 注入
	ctx.Log.Debug("Import Visited",
		zap.String("source", node.Source),
		zap.Int("specifiers", len(node.Specifiers)),
		zap.Bool("processed", node.Processed),
	)
	return nil, nil
}

// OnComplete 记录文件处理完成
func (r *ImportLogger) OnComplete(ctx *core.RewriteContext) error {
	latency := time.Since(ctx.StartTime)

	ctx.Log.Info("File Finished",
		zap.Duration("latency", latency),
		zap.Int("visited", ctx.Count(core.MetaVisited)),
		zap.Int("replaced", ctx.Count(core.MetaReplaced)),
	)
	return nil
}
