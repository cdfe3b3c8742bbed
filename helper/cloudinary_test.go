package helper

import "testing"

func TestThumbnailURL(t *testing.T) {
	t.Run("Given a cloudinary delivery url Then the width transform is inserted after upload", func(t *testing.T) {
		full := "https://res.cloudinary.com/demo/image/upload/v1718000000/sessions/sunset/abc.jpg"
		want := "https://res.cloudinary.com/demo/image/upload/c_limit,w_400/v1718000000/sessions/sunset/abc.jpg"
		if got := ThumbnailURL(full); got != want {
			t.Errorf("ThumbnailURL = %q, want %q", got, want)
		}
	})

	t.Run("Given a url without an upload segment Then it passes through unchanged", func(t *testing.T) {
		full := "https://example.test/full.jpg"
		if got := ThumbnailURL(full); got != full {
			t.Errorf("ThumbnailURL = %q, want unchanged", got)
		}
	})
}
