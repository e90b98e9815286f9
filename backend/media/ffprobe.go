package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFProbe reads media durations by shelling out to the ffprobe binary. It
// satisfies catalog.Prober.
type FFProbe struct {
	Binary string
}

func NewFFProbe() *FFProbe {
	return &FFProbe{Binary: "ffprobe"}
}

// Duration returns the duration of the media file in seconds.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, p.Binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: unparseable duration %q", path, strings.TrimSpace(string(out)))
	}
	return seconds, nil
}
