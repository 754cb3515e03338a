//go:build unix

package downloads

import (
	"os/exec"
	"syscall"
)

// configureProcess runs cmd in its own process group, so cancellation also
// stops helpers yt-dlp starts (ffmpeg merges, external downloaders).
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
