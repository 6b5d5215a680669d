package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceTypeFor(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"scene.jpg", "image"},
		{"scene.JPEG", "image"},
		{"clip.mp4", "video"},
		{"voice-note.mp3", "video"}, // audio rides the video pipeline
		{"statement.pdf", "raw"},
		{"notes.docx", "raw"},
	}
	for _, tc := range cases {
		got, err := ResourceTypeFor(tc.filename)
		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.want, got, tc.filename)
	}
}

func TestResourceTypeForRejectsUnknown(t *testing.T) {
	for _, filename := range []string{"payload.exe", "archive.zip", "noextension"} {
		_, err := ResourceTypeFor(filename)
		assert.Error(t, err, filename)
	}
}
