package mocks

import (
	"fmt"
	"sync"
)

// MockLogger は出力したメッセージを記録するロガー
type MockLogger struct {
	mu       sync.Mutex
	Debug    []string
	Warnings []string
	Errors   []string
}

// NewMockLogger は新しいMockLoggerを作成します
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) Printf(format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debug = append(l.Debug, fmt.Sprintf(format, a...))
}

func (l *MockLogger) Warnf(format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, a...))
}

func (l *MockLogger) Errorf(format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, fmt.Sprintf(format, a...))
}

// WarningCount は記録した警告の数を返します
func (l *MockLogger) WarningCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warnings)
}
