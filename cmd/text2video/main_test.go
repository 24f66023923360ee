package main

import (
	"strings"
	"testing"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5242880, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{2199023255552, "2.00 TB"},
	}

	for _, tt := range tests {
		if got := formatFileSize(tt.bytes); got != tt.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestGenerateFilename(t *testing.T) {
	name := generateFilename("video", "mp4")
	if !strings.HasPrefix(name, "video_") || !strings.HasSuffix(name, ".mp4") {
		t.Errorf("generateFilename() = %q, want video_<timestamp>.mp4", name)
	}
	// video_ + 20060102_150405 + .mp4
	if len(name) != len("video_")+15+len(".mp4") {
		t.Errorf("generateFilename() = %q, unexpected timestamp length", name)
	}
}
