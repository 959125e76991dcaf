package ops

import (
	"fmt"
	"strconv"
	"time"
)

// formatSeconds renders a duration as fractional seconds for ffmpeg
// arguments, always with a dot decimal separator.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// formatBitrate renders bits per second in ffmpeg's k-suffix form.
func formatBitrate(bps int) string {
	if bps%1000 == 0 {
		return fmt.Sprintf("%dk", bps/1000)
	}
	return strconv.Itoa(bps)
}
