package log

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestInitLogger(t *testing.T) {
	testLogFile := filepath.Join(t.TempDir(), "test.log")

	InitLogger(LogConfig{
		Filename:   testLogFile,
		MaxSize:    1,
		MaxBackups: 3,
		MaxAge:     1,
		Level:      zapcore.DebugLevel,
	})

	Logger.Debug("This is a debug message")
	Logger.Info("This is an info message")
	Logger.Warn("This is a warning message")
	Logger.Error("This is an error message")
	Close()

	logLines := readLines(t, testLogFile)
	require.Len(t, logLines, 4)

	expectedMessages := []string{"debug message", "info message", "warning message", "error message"}
	for i, msg := range expectedMessages {
		assert.Contains(t, strings.ToLower(logLines[i]), msg)
	}
}

func TestInitLogger_LevelFilter(t *testing.T) {
	testLogFile := filepath.Join(t.TempDir(), "warn.log")

	config := DefaultLogConfig()
	config.Filename = testLogFile
	config.Level = zapcore.WarnLevel
	InitLogger(config)

	Logger.Info("dropped")
	Logger.Warn("kept")
	Close()

	logLines := readLines(t, testLogFile)
	require.Len(t, logLines, 1)
	assert.Contains(t, logLines[0], "kept")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultLogConfig()

	assert.Equal(t, "", config.Filename)
	assert.Equal(t, 10, config.MaxSize)
	assert.Equal(t, zapcore.InfoLevel, config.Level)
	assert.True(t, config.Console)
}

func TestSimpleInit(t *testing.T) {
	testLogFile := filepath.Join(t.TempDir(), "simple_test.log")

	require.NoError(t, Init(testLogFile, "debug"))
	Logger.Info("Simple init test")
	Close()

	_, err := os.Stat(testLogFile)
	assert.NoError(t, err)
}

func TestSimpleInit_BadLevel(t *testing.T) {
	assert.Error(t, Init("", "loud"))
}

func TestInitLogger_FileStillReportsErrorsOnStderr(t *testing.T) {
	var buf bytes.Buffer
	saved := errorSink
	errorSink = zapcore.AddSync(&buf)
	t.Cleanup(func() { errorSink = saved })

	testLogFile := filepath.Join(t.TempDir(), "errors.log")
	require.NoError(t, Init(testLogFile, "info"))

	Logger.Info("routine")
	Logger.Error("run aborted")
	Close()

	assert.Contains(t, buf.String(), "run aborted")
	assert.NotContains(t, buf.String(), "routine")
	assert.Len(t, readLines(t, testLogFile), 2)
}
