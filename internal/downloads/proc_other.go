//go:build !unix

package downloads

import "os/exec"

// configureProcess keeps the default cancellation, which kills only yt-dlp itself.
func configureProcess(*exec.Cmd) {}
