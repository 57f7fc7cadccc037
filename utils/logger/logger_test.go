package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite defines a test suite for logger functions
type LoggerTestSuite struct {
	suite.Suite
	buffer *bytes.Buffer
}

func (suite *LoggerTestSuite) SetupTest() {
	suite.buffer = &bytes.Buffer{}
}

func (suite *LoggerTestSuite) TestNewLogger() {
	testCases := []struct {
		name   string
		level  string
		format string
	}{
		{"Debug level with JSON format", "debug", "json"},
		{"Info level with text format", "info", "text"},
		{"Invalid level defaults to info", "invalid", "json"},
		{"Empty level defaults to info", "", "text"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			logger := NewLogger(tc.level, tc.format)
			assert.NotNil(t, logger)
			assert.Implements(t, (*Logger)(nil), logger)
		})
	}
}

// TestLoggerLevels tests level filtering
func (suite *LoggerTestSuite) TestLoggerLevels() {
	testCases := []struct {
		name      string
		level     string
		logFunc   func(Logger)
		shouldLog bool
	}{
		{"Debug level logs debug messages", "debug", func(l Logger) { l.Debug("debug message") }, true},
		{"Info level skips debug messages", "info", func(l Logger) { l.Debug("debug message") }, false},
		{"Warn level skips info messages", "warn", func(l Logger) { l.Info("info message") }, false},
		{"Error level logs error messages", "error", func(l Logger) { l.Error("error message") }, true},
		{"Error level skips warn messages", "error", func(l Logger) { l.Warnf("warn %s", "message") }, false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			suite.buffer.Reset()
			logger := NewLoggerWithOutput(tc.level, "text", suite.buffer)

			tc.logFunc(logger)

			if tc.shouldLog {
				assert.NotEmpty(t, suite.buffer.String())
			} else {
				assert.Empty(t, suite.buffer.String())
			}
		})
	}
}

// TestJSONFormat tests JSON format output
func (suite *LoggerTestSuite) TestJSONFormat() {
	logger := NewLoggerWithOutput("info", "json", suite.buffer)

	logger.Info("test json message")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(suite.buffer.String())), &logEntry)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "info", logEntry["level"])
	assert.Equal(suite.T(), "test json message", logEntry["msg"])
	assert.Contains(suite.T(), logEntry, "time")
}

// TestWithFields tests that structured fields reach the output
func (suite *LoggerTestSuite) TestWithFields() {
	logger := NewLoggerWithOutput("info", "json", suite.buffer)

	logger.WithFields(Fields{
		"nomination_id": "abc-123",
		"nominee_email": "jane@x.com",
	}).Info("Nomination submitted")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(suite.buffer.String())), &logEntry)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "abc-123", logEntry["nomination_id"])
	assert.Equal(suite.T(), "jane@x.com", logEntry["nominee_email"])
	assert.Equal(suite.T(), "Nomination submitted", logEntry["msg"])
}

// TestWithFieldsDoesNotLeak tests that derived loggers do not mutate the parent
func (suite *LoggerTestSuite) TestWithFieldsDoesNotLeak() {
	logger := NewLoggerWithOutput("info", "json", suite.buffer)

	_ = logger.WithFields(Fields{"scoped": true})
	logger.Info("plain")

	assert.NotContains(suite.T(), suite.buffer.String(), "scoped")
}

// TestTextFormat tests text format output
func (suite *LoggerTestSuite) TestTextFormat() {
	logger := NewLoggerWithOutput("info", "text", suite.buffer)

	logger.Infof("info message with %s and %d", "string", 42)
	output := suite.buffer.String()

	assert.Contains(suite.T(), output, "info message with string and 42")
	assert.Contains(suite.T(), output, "level=info")
	assert.Regexp(suite.T(), `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`, output)
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func TestNewLoggerLevelValidation(t *testing.T) {
	testCases := []struct {
		inputLevel    string
		expectedLevel logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"invalid", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"DEBUG", logrus.InfoLevel}, // case sensitive
	}

	for _, tc := range testCases {
		t.Run("Level_"+tc.inputLevel, func(t *testing.T) {
			logger := NewLogger(tc.inputLevel, "text")
			logrusLogger, ok := logger.(*LogrusLogger)
			require.True(t, ok)
			assert.Equal(t, tc.expectedLevel, logrusLogger.logger.Level)
		})
	}
}

func TestNewLoggerFormatValidation(t *testing.T) {
	for _, format := range []string{"json", "text", "", "JSON"} {
		t.Run("Format_"+format, func(t *testing.T) {
			logger := NewLogger("info", format)
			logrusLogger, ok := logger.(*LogrusLogger)
			require.True(t, ok)

			if format == "json" {
				_, ok := logrusLogger.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "Expected JSON formatter")
			} else {
				_, ok := logrusLogger.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "Expected Text formatter")
			}
		})
	}
}

func TestLoggerConcurrency(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", "json", &buf)

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(id int) {
			defer func() { done <- true }()
			for j := 0; j < 50; j++ {
				logger.WithFields(Fields{"goroutine": id}).Infof("message %d", j)
			}
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Equal(t, 500, strings.Count(buf.String(), "\n"))
}
