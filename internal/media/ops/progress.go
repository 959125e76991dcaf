package ops

import (
	"regexp"
	"strconv"
)

// Progress reports advancement of a running operation. Percent is 0–100.
type Progress struct {
	Stage   string
	Percent float64
	Message string
}

// encoderTimePattern matches ffmpeg's stderr status lines, e.g.
// "frame= 120 fps= 30 ... time=00:01:23.45 bitrate= ...".
var encoderTimePattern = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// parseEncodedSeconds extracts the elapsed media time from an ffmpeg status
// line. Returns false for lines without a time marker.
func parseEncodedSeconds(line string) (float64, bool) {
	match := encoderTimePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.ParseFloat(match[1], 64)
	minutes, _ := strconv.ParseFloat(match[2], 64)
	seconds, _ := strconv.ParseFloat(match[3], 64)
	return hours*3600 + minutes*60 + seconds, true
}

// encoderProgress adapts a Progress callback into a stderr line sink. The
// fraction is elapsed media time over totalSeconds, clamped to [0,100].
func encoderProgress(stage string, totalSeconds float64, onProgress func(Progress)) func(string) {
	if onProgress == nil || totalSeconds <= 0 {
		return nil
	}
	return func(line string) {
		elapsed, ok := parseEncodedSeconds(line)
		if !ok {
			return
		}
		percent := elapsed / totalSeconds * 100
		if percent > 100 {
			percent = 100
		}
		onProgress(Progress{Stage: stage, Percent: percent})
	}
}
