package scanner

import (
	"path/filepath"
	"strings"
)

// videoExtensions are the recognized video container extensions.
var videoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".ts":   true,
	".m2ts": true,
}

// IsVideoFile reports whether the path has a recognized video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// isSample reports whether a filename looks like a sample clip.
func isSample(name string) bool {
	return strings.Contains(strings.ToLower(name), "sample")
}
