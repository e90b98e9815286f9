package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	svc := newTestService(t)
	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "01 intro.mp4", 100)
	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section2", "01 advanced.mp4", 200)

	first := Fingerprint(svc.Cfg.VideosDir, "go-basics")
	second := Fingerprint(svc.Cfg.VideosDir, "go-basics")
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestFingerprintChangesOnTouch(t *testing.T) {
	svc := newTestService(t)
	path := writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "01 intro.mp4", 100)

	before := Fingerprint(svc.Cfg.VideosDir, "go-basics")
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	after := Fingerprint(svc.Cfg.VideosDir, "go-basics")

	assert.NotEqual(t, before, after)
}

func TestFingerprintChangesOnAddAndResize(t *testing.T) {
	svc := newTestService(t)
	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "01 intro.mp4", 100)
	before := Fingerprint(svc.Cfg.VideosDir, "go-basics")

	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "02 setup.mp4", 100)
	withNewFile := Fingerprint(svc.Cfg.VideosDir, "go-basics")
	assert.NotEqual(t, before, withNewFile)

	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "02 setup.mp4", 250)
	withResize := Fingerprint(svc.Cfg.VideosDir, "go-basics")
	assert.NotEqual(t, withNewFile, withResize)
}

func TestFingerprintIgnoresNonVideoFiles(t *testing.T) {
	svc := newTestService(t)
	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "01 intro.mp4", 100)
	before := Fingerprint(svc.Cfg.VideosDir, "go-basics")

	notes := filepath.Join(svc.Cfg.VideosDir, "go-basics", "section1", "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("notes"), 0o644))
	after := Fingerprint(svc.Cfg.VideosDir, "go-basics")

	assert.Equal(t, before, after)
}

func TestFingerprintEmptyOnMissingFolder(t *testing.T) {
	svc := newTestService(t)

	assert.Empty(t, Fingerprint(svc.Cfg.VideosDir, "does-not-exist"))
}
