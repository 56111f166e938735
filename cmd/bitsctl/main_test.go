package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/danmuck/bitsctl/internal/testutil/testlog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	testlog.Start(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func answers(versionSum, value uint64) string {
	return fmt.Sprintf("%s %d\n%s %d\n", versionSumQuestion, versionSum, evaluateQuestion, value)
}

func TestSolveFromArgument(t *testing.T) {
	out, err := execute(t, "", "solve", "9C0141080250320F1802104A08")
	require.NoError(t, err)
	assert.Equal(t, answers(20, 1), out)
}

func TestSolveFromStdin(t *testing.T) {
	out, err := execute(t, "8A004A801A8002F478\n", "solve")
	require.NoError(t, err)
	assert.Equal(t, answers(16, 15), out)
}

func TestSolveFromInputFileAndMetrics(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "day_16_input.txt")
	require.NoError(t, os.WriteFile(input, []byte("C200B40A82\n"), 0o644))
	metrics := filepath.Join(dir, "bitsctl.prom")

	out, err := execute(t, "", "solve", "--input", input, "--metrics-textfile", metrics)
	require.NoError(t, err)
	assert.Equal(t, answers(14, 3), out)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bitsctl_decode_packets_total")
}

func TestSolveNoInput(t *testing.T) {
	_, err := execute(t, "  \n", "solve")
	assert.True(t, errors.Is(err, errNoInput), "got %v", err)
}

func TestSolveReportsDecodeErrors(t *testing.T) {
	_, err := execute(t, "", "solve", "D2F")
	assert.True(t, errors.Is(err, packet.ErrTruncated), "got %v", err)
}

func TestDecodeFormats(t *testing.T) {
	out, err := execute(t, "", "decode", "D2FE28")
	require.NoError(t, err)
	assert.Equal(t, "v6 literal 2021 [0+21]\n", out)

	out, err = execute(t, "", "decode", "--format", "json", "38006F45291200")
	require.NoError(t, err)
	var node packet.Node
	require.NoError(t, json.Unmarshal([]byte(out), &node))
	assert.Equal(t, "less", node.Type)
	require.Len(t, node.Children, 2)

	out, err = execute(t, "", "decode", "-f", "yaml", "EE00D40C823060")
	require.NoError(t, err)
	var ynode packet.Node
	require.NoError(t, yaml.Unmarshal([]byte(out), &ynode))
	assert.Equal(t, "maximum", ynode.Type)
	assert.Equal(t, "count", ynode.LengthType)
	require.Len(t, ynode.Children, 3)

	_, err = execute(t, "", "decode", "--format", "xml", "D2FE28")
	assert.Error(t, err)
}

func TestConfigFileDrivesDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bitsctl.toml")
	out, err := execute(t, "", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	strict := strings.Replace(string(content), "require_zero_padding = false", "require_zero_padding = true", 1)
	require.NoError(t, os.WriteFile(path, []byte(strict), 0o644))

	_, err = execute(t, "", "solve", "--config", path, "D2FE2F")
	assert.True(t, errors.Is(err, packet.ErrTrailingData), "got %v", err)

	out, err = execute(t, "", "solve", "--config", path, "D2FE28")
	require.NoError(t, err)
	assert.Equal(t, answers(6, 2021), out)
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestEnvLogLevelSurvivesSolve(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	t.Setenv(logging.EnvLogLevel, "debug")
	cfg := logging.ResolveConfig(logging.ProfileRuntime)
	cfg.Out = io.Discard
	logging.Apply(cfg)
	require.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())

	_, err := execute(t, "", "solve", "D2FE28")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())

	_, err = execute(t, "", "solve", "--log-level", "error", "D2FE28")
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, log.Logger.GetLevel())
}
