package main

import (
	"os"
	"testing"
)

// ========== NewStructuredLogger 测试 ==========

func TestNewStructuredLogger(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")

	logger, err := NewStructuredLogger()
	if err != nil {
		t.Fatalf("NewStructuredLogger() error = %v", err)
	}
	defer logger.Close()

	if logger.zap == nil {
		t.Fatal("zap logger 不应为 nil")
	}
	if logger.GetLevel() != INFO {
		t.Errorf("默认级别应为 INFO, got %v", logger.GetLevel())
	}
}

func TestNewStructuredLogger_EnvLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "DEBUG")
	defer os.Unsetenv("LOG_LEVEL")

	logger, err := NewStructuredLogger()
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	defer logger.Close()

	if logger.GetLevel() != DEBUG {
		t.Errorf("环境变量 DEBUG, got %v", logger.GetLevel())
	}
}

// ========== GetLevel / SetLevel 测试 ==========

func TestStructuredLogger_SetLevel_AllLevels(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")

	logger, err := NewStructuredLogger()
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	defer logger.Close()

	tests := []LogLevel{DEBUG, INFO, WARN, ERROR, NONE}
	for _, lvl := range tests {
		logger.SetLevel(lvl)
		if logger.GetLevel() != lvl {
			t.Errorf("SetLevel(%v) 后 GetLevel() = %v", lvl, logger.GetLevel())
		}
	}
}

// ========== ParseLogLevel 测试 ==========

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{" info ", INFO},
		{"WARN", WARN},
		{"WARNING", WARN},
		{"error", ERROR},
		{"NONE", NONE},
		{"OFF", NONE},
		{"garbage", INFO}, // 未知值回退 INFO
		{"", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// ========== LogLevel.String 测试 ==========

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{NONE, "NONE"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

// TestZap_Injectable 底层 zap.Logger 可注入客户端库
func TestZap_Injectable(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")

	logger, err := NewStructuredLogger()
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	defer logger.Close()

	z := logger.Zap()
	if z == nil {
		t.Fatal("Zap() 不应返回 nil")
	}

	// 注入端直接调用不应 panic
	z.Info("注入测试")
}
