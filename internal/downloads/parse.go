package downloads

import (
	"strconv"
	"strings"

	"ryt/internal/domain/command"
	"ryt/internal/domain/regex"
	"ryt/internal/models"
)

// ParseProgress extracts the percentage from a yt-dlp "[download]  NN.N%" line.
// Out-of-range or unparsable values report false.
func ParseProgress(line string) (models.ProgressSample, bool) {
	m := regex.ProgressCompile().FindStringSubmatch(line)
	if m == nil {
		return models.ProgressSample{}, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct < 0 || pct > 100 {
		return models.ProgressSample{}, false
	}
	return models.ProgressSample{
		Percent: pct,
		Status:  ExtractStatus(line),
	}, true
}

// ExtractStatus returns the text after the first "] ", or the whole line.
func ExtractStatus(line string) string {
	if i := strings.Index(line, command.TagSeparator); i >= 0 {
		return strings.TrimSpace(line[i+len(command.TagSeparator):])
	}
	return strings.TrimSpace(line)
}
