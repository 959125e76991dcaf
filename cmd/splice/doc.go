// Command splice is a CLI front end for the ffmpeg-backed media toolkit:
// probing, trimming, concatenation, conversion, audio and frame extraction,
// GIF and waveform rendering, and silence detection/removal.
package main
