package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(false)
	c.SetOutput(&buf)

	c.Info("check_started", F("check_id", "health"))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "check_started")
	assert.Contains(t, out, "check_id=health")
}

func TestConsoleLogger_DebugSuppressedUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(false)
	c.SetOutput(&buf)

	c.Debug("hidden")
	assert.Empty(t, buf.String())

	verbose := NewConsoleLogger(true)
	verbose.SetOutput(&buf)
	verbose.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestConsoleLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(false)
	c.SetOutput(&buf)

	child := c.WithFields(F("run_id", "run_1"))
	child.Info("started")

	assert.Contains(t, buf.String(), "run_id=run_1")
}

func TestConsoleLogger_StatusLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(false)
	c.SetOutput(&buf)

	c.PassLine("Health Check", "")
	c.FailLine("Submit Quiz", "points mismatch")

	out := buf.String()
	assert.Contains(t, out, "PASS: Health Check")
	assert.Contains(t, out, "FAIL: Submit Quiz")
	assert.Contains(t, out, "points mismatch")
}

func TestJSONLogger_WritesEntriesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := NewJSONLogger(JSONConfig{
		OutputPath: path,
		Level:      LevelDebug,
	})
	require.NoError(t, err)

	l.Info("check_started", F("check_id", "health"))
	l.Error("check_error", Err(errors.New("boom")))
	require.NoError(t, l.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t,
			json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "check_started", entries[0]["message"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := NewJSONLogger(JSONConfig{
		OutputPath: path,
		Level:      LevelWarn,
	})
	require.NoError(t, err)

	l.Info("ignored")
	l.Warn("kept")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ignored")
	assert.Contains(t, string(data), "kept")
}

func TestJSONLogger_APITrafficFiles(t *testing.T) {
	dir := t.TempDir()
	l, err := NewJSONLogger(JSONConfig{
		OutputPath:     filepath.Join(dir, "run.log"),
		APIRequestLog:  filepath.Join(dir, "requests.jsonl"),
		APIResponseLog: filepath.Join(dir, "responses.jsonl"),
	})
	require.NoError(t, err)

	l.LogAPIRequest(APIRequestLog{
		RequestID: "req-1",
		Method:    "GET",
		URL:       "http://localhost:8000/",
	})
	l.LogAPIResponse(APIResponseLog{
		RequestID:  "req-1",
		StatusCode: 200,
	})
	require.NoError(t, l.Close())

	reqData, err := os.ReadFile(
		filepath.Join(dir, "requests.jsonl"),
	)
	require.NoError(t, err)
	assert.Contains(t, string(reqData), "req-1")

	respData, err := os.ReadFile(
		filepath.Join(dir, "responses.jsonl"),
	)
	require.NoError(t, err)
	assert.Contains(t, string(respData), `"status_code":200`)
}

func TestMultiLogger_FansOut(t *testing.T) {
	var first, second bytes.Buffer
	a := NewConsoleLogger(false)
	a.SetOutput(&first)
	b := NewConsoleLogger(false)
	b.SetOutput(&second)

	m := NewMultiLogger(a, b)
	m.Info("hello")

	assert.Contains(t, first.String(), "hello")
	assert.Contains(t, second.String(), "hello")
}

func TestNullLogger_Noop(t *testing.T) {
	l := NewNullLogger()

	l.Info("ignored")
	l.LogAPIRequest(APIRequestLog{})
	assert.NoError(t, l.Close())
}

func TestField_Helpers(t *testing.T) {
	f := F("key", 42)
	assert.Equal(t, "key", f.Key)
	assert.Equal(t, 42, f.Value)

	e := Err(errors.New("boom"))
	assert.Equal(t, "error", e.Key)
	assert.Equal(t, "boom", e.Value)

	assert.Equal(t, "<nil>", Err(nil).Value)
}
