// Package frames extracts single video frames via ffmpeg, used to
// generate clip thumbnails.
package frames
