package audiofile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"
)

// ProbeDuration determines the playable duration of an audio file. WAV files
// are decoded in-process; everything else falls back to ffprobe.
func ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		if d, err := wavDuration(path); err == nil {
			return d, nil
		}
		// Mislabelled or non-canonical WAV; let ffprobe have a go.
	}
	return ffprobeDuration(ctx, path)
}

// ValidateDuration probes the file and checks it against the configured
// bounds, returning the duration in seconds.
func ValidateDuration(ctx context.Context, path string, min, max time.Duration) (float64, error) {
	d, err := ProbeDuration(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("invalid audio file: %w", err)
	}
	if d > max {
		return d.Seconds(), fmt.Errorf("audio too long, maximum duration: %d seconds", int(max.Seconds()))
	}
	if d < min {
		return d.Seconds(), fmt.Errorf("audio too short, minimum duration: %d second", int(min.Seconds()))
	}
	return d.Seconds(), nil
}

func wavDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	dur, err := d.Duration()
	if err != nil {
		return 0, fmt.Errorf("decode wav: %w", err)
	}
	log.Debug().
		Str("path", path).
		Uint32("sampleRate", d.SampleRate).
		Uint16("channels", d.NumChans).
		Uint16("bitDepth", d.BitDepth).
		Dur("duration", dur).
		Msg("Decoded WAV header")
	return dur, nil
}

func ffprobeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: parse duration: %w", err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
