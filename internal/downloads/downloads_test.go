package downloads_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"ryt/internal/domain/errconsts"
	"ryt/internal/downloads"
	"ryt/internal/models"
	"ryt/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingIndicator keeps everything it is given.
type recordingIndicator struct {
	mu       sync.Mutex
	samples  []models.ProgressSample
	statuses []string
	finished bool
	success  bool
}

func (r *recordingIndicator) Update(s models.ProgressSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, s)
}

func (r *recordingIndicator) SetStatus(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *recordingIndicator) Finish(success bool, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = true
	r.success = success
}

type fakeRecorder struct {
	mu       sync.Mutex
	started  []models.DownloadRequest
	finished map[int64]error
}

func (f *fakeRecorder) RecordStart(_ context.Context, _ string, req models.DownloadRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, req)
	return int64(len(f.started)), nil
}

func (f *fakeRecorder) RecordFinish(_ context.Context, id int64, dlErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished == nil {
		f.finished = map[int64]error{}
	}
	f.finished[id] = dlErr
	return nil
}

type fakeCookies struct {
	path    string
	cleaned bool
}

func (f *fakeCookies) ExportCookies(context.Context, string) (string, func(), error) {
	return f.path, func() { f.cleaned = true }, nil
}

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

func newDownloader(t *testing.T, tool string, ind progress.Indicator, opts ...downloads.Option) *downloads.Downloader {
	t.Helper()
	settings := &models.Settings{
		DownloadDir:            filepath.Join(t.TempDir(), "ryt"),
		YtdlpPath:              tool,
		MaxConcurrentDownloads: 1,
	}
	opts = append([]downloads.Option{
		downloads.WithOutput(&strings.Builder{}),
		downloads.WithIndicator(func(string, bool) progress.Indicator { return ind }),
	}, opts...)
	d, err := downloads.New(settings, opts...)
	require.NoError(t, err)
	return d
}

func TestNew_CreatesDownloadTree(t *testing.T) {
	d := newDownloader(t, "yt-dlp", &recordingIndicator{})
	for _, sub := range []string{"single-videos", "playlists"} {
		info, err := os.Stat(filepath.Join(d.Settings.DownloadDir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, "yt-dlp", d.Tool())
}

func TestCheckAvailability(t *testing.T) {
	t.Run("missing executable", func(t *testing.T) {
		d := newDownloader(t, filepath.Join(t.TempDir(), "no-such-yt-dlp"), &recordingIndicator{})
		assert.ErrorIs(t, d.CheckAvailability(context.Background()), errconsts.ErrToolNotFound)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("fake yt-dlp is a shell script")
		}
		path := filepath.Join(t.TempDir(), "yt-dlp")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 1\n"), 0o755))
		d := newDownloader(t, path, &recordingIndicator{})
		assert.ErrorIs(t, d.CheckAvailability(context.Background()), errconsts.ErrToolNotFound)
	})

	t.Run("available", func(t *testing.T) {
		d := newDownloader(t, writeFakeTool(t, "exit 0"), &recordingIndicator{})
		assert.NoError(t, d.CheckAvailability(context.Background()))
	})
}

func TestDownload_StreamsProgress(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	tool := writeFakeTool(t, `for a in "$@"; do printf '%s\n' "$a"; done > '`+argsFile+`'
echo "[youtube] abc: Downloading webpage"
echo "[download] Destination: /tmp/video.mp4"
echo "[download]   0.0% of 10.00MiB at 1.00MiB/s ETA 00:10"
echo "[download]  42.5% of 10.00MiB at 1.00MiB/s ETA 00:05"
echo "[download] 250.0% of nonsense"
echo "some warning" >&2
echo "[download] 100.0% of 10.00MiB in 00:10"
exit 0`)

	ind := &recordingIndicator{}
	rec := &fakeRecorder{}
	d := newDownloader(t, tool, ind, downloads.WithRecorder(rec))

	req := models.NewDownloadRequest("https://youtu.be/abc", models.ContentSingle, models.FormatVideo, models.Quality1080p)
	require.NoError(t, d.Download(context.Background(), req))

	require.Len(t, ind.samples, 3)
	assert.Equal(t, 0.0, ind.samples[0].Percent)
	assert.Equal(t, models.ProgressSample{Percent: 42.5, Status: "42.5% of 10.00MiB at 1.00MiB/s ETA 00:05"}, ind.samples[1])
	assert.Equal(t, 100.0, ind.samples[2].Percent)
	assert.Equal(t, []string{"Destination: /tmp/video.mp4", "250.0% of nonsense"}, ind.statuses)
	assert.True(t, ind.finished)
	assert.True(t, ind.success)

	raw, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	args := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, downloads.BuildArgs(d.Settings.DownloadDir, req, ""), args)

	require.Len(t, rec.started, 1)
	assert.Equal(t, req, rec.started[0])
	assert.NoError(t, rec.finished[1])
}

func TestDownload_NonZeroExitFails(t *testing.T) {
	tool := writeFakeTool(t, `echo "[download]  10.0% of 1MiB"
echo "ERROR: Video unavailable" >&2
exit 2`)

	ind := &recordingIndicator{}
	rec := &fakeRecorder{}
	d := newDownloader(t, tool, ind, downloads.WithRecorder(rec))

	err := d.Download(context.Background(), models.NewDownloadRequest("https://youtu.be/abc", models.ContentSingle, models.FormatAudio, ""))
	require.ErrorIs(t, err, errconsts.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "code 2")
	assert.Contains(t, err.Error(), "Video unavailable")
	assert.True(t, ind.finished)
	assert.False(t, ind.success)
	assert.ErrorIs(t, rec.finished[1], errconsts.ErrDownloadFailed)
}

func TestDownload_MissingToolIsToolNotFound(t *testing.T) {
	d := newDownloader(t, filepath.Join(t.TempDir(), "gone"), &recordingIndicator{})
	err := d.Download(context.Background(), models.NewDownloadRequest("https://youtu.be/abc", models.ContentSingle, models.FormatAudio, ""))
	assert.ErrorIs(t, err, errconsts.ErrToolNotFound)
}

func TestDownload_CancelStopsHelperProcesses(t *testing.T) {
	// The background sleep stands in for an ffmpeg merge holding stdout open
	tool := writeFakeTool(t, `echo "[download]  10.0% of 1MiB"
sleep 5 &
wait`)

	ind := &recordingIndicator{}
	rec := &fakeRecorder{}
	d := newDownloader(t, tool, ind, downloads.WithRecorder(rec))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := d.Download(ctx, models.NewDownloadRequest("https://youtu.be/abc", models.ContentSingle, models.FormatAudio, ""))
	elapsed := time.Since(start)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 3*time.Second)
	assert.True(t, ind.finished)
	assert.False(t, ind.success)
	assert.ErrorIs(t, rec.finished[1], context.DeadlineExceeded)
}

func TestDownload_PassesBrowserCookies(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	tool := writeFakeTool(t, `for a in "$@"; do printf '%s\n' "$a"; done > '`+argsFile+`'`)

	cookies := &fakeCookies{path: "/tmp/ryt-cookies.txt"}
	d := newDownloader(t, tool, &recordingIndicator{}, downloads.WithCookies(cookies))
	d.Settings.BrowserCookies = true

	require.NoError(t, d.Download(context.Background(), models.NewDownloadRequest("https://vimeo.com/1", models.ContentPlaylist, models.FormatVideo, models.QualityBest)))

	raw, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "--cookies\n/tmp/ryt-cookies.txt\n")
	assert.True(t, cookies.cleaned)
}

func TestDownloadAll_RespectsConcurrencyLimit(t *testing.T) {
	work := t.TempDir()
	running := filepath.Join(work, "running")
	require.NoError(t, os.Mkdir(running, 0o755))
	counts := filepath.Join(work, "counts")

	tool := writeFakeTool(t, `touch '`+running+`/run.'$$
ls '`+running+`' | grep -c '^run\.' >> '`+counts+`'
sleep 0.3
rm -f '`+running+`/run.'$$
echo "[download] 100.0% of 1MiB"
case "$*" in *fail*) exit 1;; esac
exit 0`)

	rec := &fakeRecorder{}
	settings := &models.Settings{
		DownloadDir:            filepath.Join(work, "ryt"),
		YtdlpPath:              tool,
		MaxConcurrentDownloads: 2,
	}
	d, err := downloads.New(settings,
		downloads.WithOutput(&strings.Builder{}),
		downloads.WithRecorder(rec),
		downloads.WithIndicator(func(string, bool) progress.Indicator { return &recordingIndicator{} }),
	)
	require.NoError(t, err)

	reqs := []models.DownloadRequest{
		models.NewDownloadRequest("https://youtu.be/a", models.ContentSingle, models.FormatAudio, ""),
		models.NewDownloadRequest("https://youtu.be/fail", models.ContentSingle, models.FormatAudio, ""),
		models.NewDownloadRequest("https://youtu.be/c", models.ContentSingle, models.FormatAudio, ""),
		models.NewDownloadRequest("https://youtu.be/d", models.ContentSingle, models.FormatAudio, ""),
	}
	err = d.DownloadAll(context.Background(), reqs)
	require.ErrorIs(t, err, errconsts.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "https://youtu.be/fail")

	raw, err := os.ReadFile(counts)
	require.NoError(t, err)
	lines := strings.Fields(string(raw))
	require.Len(t, lines, len(reqs))
	for _, l := range lines {
		n, err := strconv.Atoi(l)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, 2)
	}
	assert.Len(t, rec.started, len(reqs))
}
