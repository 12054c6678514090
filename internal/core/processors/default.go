package processors

import (
	"go.uber.org/zap"

	"reimport/internal/core"
)

// NewDefaultPipeline 创建标准的 rewrite pipeline：日志 + 规则替换
func NewDefaultPipeline(options interface{}, maxReplacements int, log *zap.Logger) *core.Pipeline {
	pipeline := core.NewPipeline()
	pipeline.SetMaxReplacements(maxReplacements)
	pipeline.AddProcessor(NewImportLogger())
	pipeline.AddProcessor(NewReplaceImports(options, log))
	return pipeline
}
