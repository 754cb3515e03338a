package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"ryt/internal/config"
	"ryt/internal/domain/errconsts"
	"ryt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_WritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ryt", "config.toml")
	store := config.NewStore(path)

	settings, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), settings)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults should be written on first run")
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	store := config.NewStore(filepath.Join(t.TempDir(), "config.toml"))

	want := &models.Settings{
		DownloadDir:            "/media/downloads",
		DefaultQuality:         "720p",
		DefaultFormat:          "audio",
		YtdlpPath:              "/opt/bin/yt-dlp",
		MaxConcurrentDownloads: 5,
		BrowserCookies:         true,
	}
	require.NoError(t, store.Save(want))

	got, err := store.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadOrCreate_CorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("download_dir = [unterminated\n=="), 0o600))

	settings, err := config.NewStore(path).LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), settings)
}

func TestLoadOrCreate_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_format = \"audio\"\n"), 0o600))

	settings, err := config.NewStore(path).LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, "audio", settings.DefaultFormat)
	assert.Equal(t, config.Default().DefaultQuality, settings.DefaultQuality)
	assert.Equal(t, config.Default().MaxConcurrentDownloads, settings.MaxConcurrentDownloads)
}

func TestLoadOrCreate_InvalidValuesFallBackPerField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	dir := filepath.Join(t.TempDir(), "media")
	conf := "download_dir = \"" + filepath.ToSlash(dir) + "\"\n" +
		"default_quality = \"999p\"\n" +
		"default_format = \"bogus\"\n" +
		"max_concurrent_downloads = 0\n" +
		"browser_cookies = true\n"
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o600))

	settings, err := config.NewStore(path).LoadOrCreate()
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.DefaultQuality, settings.DefaultQuality)
	assert.Equal(t, def.DefaultFormat, settings.DefaultFormat)
	assert.Equal(t, def.MaxConcurrentDownloads, settings.MaxConcurrentDownloads)
	assert.Equal(t, filepath.ToSlash(dir), settings.DownloadDir)
	assert.True(t, settings.BrowserCookies)
}

func TestLoadOrCreate_NormalizesValidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_quality = \"720\"\ndefault_format = \"AUDIO\"\n"), 0o600))

	settings, err := config.NewStore(path).LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, "720p", settings.DefaultQuality)
	assert.Equal(t, "audio", settings.DefaultFormat)
}

func TestLoadOrCreate_DirectoryIsError(t *testing.T) {
	_, err := config.NewStore(t.TempDir()).LoadOrCreate()
	require.Error(t, err)
}

func TestEnsureDownloadDirs_Idempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ryt")
	settings := &models.Settings{DownloadDir: root}

	require.NoError(t, config.EnsureDownloadDirs(settings))
	first := listTree(t, root)

	require.NoError(t, config.EnsureDownloadDirs(settings))
	assert.Equal(t, first, listTree(t, root))
	assert.ElementsMatch(t, []string{".", "playlists", "single-videos"}, first)
}

func TestSet(t *testing.T) {
	settings := config.Default()

	require.NoError(t, config.Set(settings, config.KeyDefaultQuality, "720"))
	assert.Equal(t, "720p", settings.DefaultQuality)

	require.NoError(t, config.Set(settings, config.KeyDefaultFormat, "Audio"))
	assert.Equal(t, "audio", settings.DefaultFormat)

	require.NoError(t, config.Set(settings, config.KeyMaxConcurrent, "4"))
	assert.Equal(t, 4, settings.MaxConcurrentDownloads)

	require.NoError(t, config.Set(settings, config.KeyBrowserCookies, "true"))
	assert.True(t, settings.BrowserCookies)

	require.NoError(t, config.Set(settings, config.KeyYtdlpPath, "/usr/local/bin/yt-dlp"))
	assert.Equal(t, "/usr/local/bin/yt-dlp", settings.YtdlpPath)

	for key, value := range map[string]string{
		"unknown_key":            "x",
		config.KeyDefaultQuality: "999p",
		config.KeyDefaultFormat:  "gif",
		config.KeyMaxConcurrent:  "0",
		config.KeyBrowserCookies: "maybe",
		config.KeyDownloadDir:    "  ",
	} {
		err := config.Set(settings, key, value)
		assert.ErrorIs(t, err, errconsts.ErrInvalidSetting, "key %s value %q", key, value)
	}
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	require.NoError(t, err)
	return out
}
