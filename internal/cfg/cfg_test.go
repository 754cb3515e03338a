package cfg_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"ryt/internal/cfg"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeTool writes an executable shell script standing in for yt-dlp.
func writeFakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a shell script")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	script := "#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then echo 2024.08.06; exit 0; fi\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// writeConfig writes a config file whose downloads land in a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	conf := fmt.Sprintf("download_dir = %q\ndefault_quality = \"1080p\"\ndefault_format = \"video\"\nmax_concurrent_downloads = 3\n",
		filepath.Join(dir, "downloads"))
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o600))
	return path
}

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	err := cfg.Execute(context.Background(), args, cfg.Env{
		In:  strings.NewReader(input),
		Out: out,
		Err: &bytes.Buffer{},
	})
	return out.String(), err
}

func TestMissingToolExitsCleanly(t *testing.T) {
	conf := writeConfig(t)
	missing := filepath.Join(t.TempDir(), "no-yt-dlp")

	for _, args := range [][]string{
		{"--url", "https://youtu.be/abc"},
		{"download", "https://youtu.be/abc"},
		{},
	} {
		out, err := run(t, "1\n", append([]string{"--config", conf, "--ytdlp-path", missing}, args...)...)
		require.NoError(t, err, "%v", args)
		assert.Contains(t, out, "yt-dlp check failed")
		assert.Contains(t, out, "Please install yt-dlp")
		assert.NotContains(t, out, "Starting download")
	}
}

func TestDirectDownload(t *testing.T) {
	conf := writeConfig(t)
	argsFile := filepath.Join(t.TempDir(), "args")
	tool := writeFakeTool(t, `for a in "$@"; do printf '%s\n' "$a"; done > '`+argsFile+`'
echo "[download] 100.0% of 1MiB"`)

	out, err := run(t, "", "--config", conf, "--ytdlp-path", tool,
		"-u", "https://youtu.be/abc", "--type", "single", "--format", "audio")
	require.NoError(t, err)
	assert.Contains(t, out, "Download completed successfully!")

	raw, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "--extract-audio\n")

	out, err = run(t, "", "--config", conf, "--ytdlp-path", tool, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "https://youtu.be/abc")
}

func TestDownloadCommand_InvalidURLExitsCleanly(t *testing.T) {
	conf := writeConfig(t)
	tool := writeFakeTool(t, "exit 0")

	out, err := run(t, "", "--config", conf, "--ytdlp-path", tool, "download", "https://example.com/v")
	require.NoError(t, err)
	assert.Contains(t, out, "Supported platforms")
}

func TestDownloadCommand_FailureExitsCleanly(t *testing.T) {
	conf := writeConfig(t)
	tool := writeFakeTool(t, "exit 1")

	out, err := run(t, "", "--config", conf, "--ytdlp-path", tool,
		"download", "--type", "single", "--quality", "720p", "https://vimeo.com/1")
	require.NoError(t, err)
	assert.Contains(t, out, "Download failed")
}

func TestConfigCommands(t *testing.T) {
	conf := writeConfig(t)
	tool := writeFakeTool(t, "exit 0")
	base := []string{"--config", conf, "--ytdlp-path", tool}

	out, err := run(t, "", append(base, "config", "path")...)
	require.NoError(t, err)
	assert.Equal(t, conf+"\n", out)

	_, err = run(t, "", append(base, "config", "set", "max_concurrent_downloads", "5")...)
	require.NoError(t, err)

	var saved struct {
		MaxConcurrentDownloads int    `toml:"max_concurrent_downloads"`
		YtdlpPath              string `toml:"ytdlp_path"`
	}
	_, err = toml.DecodeFile(conf, &saved)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.MaxConcurrentDownloads)
	assert.Empty(t, saved.YtdlpPath, "--ytdlp-path is not persisted")

	out, err = run(t, "", append(base, "config", "set", "max_concurrent_downloads", "zero")...)
	require.NoError(t, err)
	assert.Contains(t, out, "invalid setting")

	_, err = run(t, "", append(base, "config", "set", "only-one-arg")...)
	assert.Error(t, err)

	out, err = run(t, "", append(base, "config")...)
	require.NoError(t, err)
	assert.Contains(t, out, "max_concurrent_downloads")
}

func TestHistoryExport(t *testing.T) {
	conf := writeConfig(t)
	tool := writeFakeTool(t, "exit 0")
	base := []string{"--config", conf, "--ytdlp-path", tool}

	_, err := run(t, "", append(base, "download", "--type", "single", "--format", "audio", "https://soundcloud.com/a/b")...)
	require.NoError(t, err)

	exportFile := filepath.Join(t.TempDir(), "out.json")
	_, err = run(t, "", append(base, "history", "--since", "24h", "export", exportFile)...)
	require.NoError(t, err)

	raw, err := os.ReadFile(exportFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"url": "https://soundcloud.com/a/b"`)

	out, err := run(t, "", append(base, "history", "retry", "abc")...)
	require.NoError(t, err)
	assert.Contains(t, out, "positive number")
}

func TestYtdlpPathFromEnvironment(t *testing.T) {
	conf := writeConfig(t)
	tool := writeFakeTool(t, "exit 0")
	t.Setenv("RYT_YTDLP_PATH", tool)

	out, err := run(t, "", "--config", conf, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, conf+"\n", out)
}
