package processors

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"reimport/internal/core"
)

func TestImportLoggerWithCallerInfo(t *testing.T) {
	// 创建一个 observer 来捕获日志
	obsCore, observedLogs := observer.New(zap.DebugLevel)
	testLogger := zap.New(obsCore, zap.AddCaller(), zap.AddCallerSkip(1))

	importLogger := NewImportLogger()
	ctx := core.NewRewriteContext(context.Background(), testLogger)

	node := &core.ImportNode{
		Source:     "//lib:defs.bzl",
		Specifiers: []core.Specifier{{Imported: "a", Local: "a"}, {Imported: "b", Local: "c"}},
	}

	nodes, err := importLogger.OnImport(ctx, node)
	if err != nil {
		t.Fatalf("OnImport failed: %v", err)
	}
	if nodes != nil {
		t.Fatalf("Expected no replacement, got %d nodes", len(nodes))
	}

	logs := observedLogs.All()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}

	log := logs[0]
	if log.Message != "Import Visited" {
		t.Errorf("Expected message 'Import Visited', got '%s'", log.Message)
	}

	// caller 应该显示这个测试文件，而不是 processors/logger.go
	caller := log.Caller
	if !caller.Defined {
		t.Fatal("Expected caller information")
	}
	if !strings.HasSuffix(caller.File, "logger_test.go") {
		t.Errorf("Expected caller file to be 'logger_test.go', got %s", caller.File)
	}

	expectedFields := map[string]interface{}{
		"source":     "//lib:defs.bzl",
		"specifiers": int64(2),
		"processed":  false,
	}
	for key, expected := range expectedFields {
		fieldValue, found := log.ContextMap()[key]
		if !found {
			t.Errorf("Expected field '%s' not found in log", key)
			continue
		}
		if fieldValue != expected {
			t.Errorf("Expected field '%s' to be '%v', got '%v'", key, expected, fieldValue)
		}
	}
}

func TestImportLoggerOnComplete(t *testing.T) {
	obsCore, observedLogs := observer.New(zap.InfoLevel)
	testLogger := zap.New(obsCore)

	importLogger := NewImportLogger()
	ctx := core.NewRewriteContext(context.Background(), testLogger)
	ctx.Incr(core.MetaVisited, 3)
	ctx.Incr(core.MetaReplaced, 1)

	if err := importLogger.OnComplete(ctx); err != nil {
		t.Fatalf("OnComplete failed: %v", err)
	}

	logs := observedLogs.All()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}

	log := logs[0]
	if log.Message != "File Finished" {
		t.Errorf("Expected message 'File Finished', got '%s'", log.Message)
	}

	fields := log.ContextMap()
	if _, found := fields["latency"]; !found {
		t.Error("Expected 'latency' field not found in log")
	}
	if fields["visited"] != int64(3) {
		t.Errorf("Expected visited 3, got '%v'", fields["visited"])
	}
	if fields["replaced"] != int64(1) {
		t.Errorf("Expected replaced 1, got '%v'", fields["replaced"])
	}
}
