package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coursebay/backend/config"
	"coursebay/backend/models"
	"coursebay/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.Profile{}, &models.Progress{}))

	cfg := &config.Config{
		PublicBaseURL: "http://localhost:4000",
		VideosDir:     filepath.Join(dir, "videos"),
		PublicDir:     filepath.Join(dir, "public"),
		CacheTTL:      time.Minute,
	}
	require.NoError(t, os.MkdirAll(cfg.VideosDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.PublicDir, 0o755))

	return NewService(db, NewResultCache(cfg.CacheTTL), cfg, nil, nil)
}

func writeVideo(t *testing.T, videosDir, course, section, name string, size int) string {
	t.Helper()
	dir := filepath.Join(videosDir, course, section)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'v'}, size), 0o644))
	return path
}

func TestListCoursesUsesCache(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.DB.Create(&models.Course{FolderName: "go-basics", CourseName: "go-basics"}).Error)

	courses, err := svc.ListCourses()
	require.NoError(t, err)
	require.Len(t, courses, 1)

	// A direct row insert is invisible until the cache expires or is
	// invalidated.
	require.NoError(t, svc.DB.Create(&models.Course{FolderName: "rust-basics", CourseName: "rust-basics"}).Error)
	courses, err = svc.ListCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	svc.Cache.Invalidate()
	courses, err = svc.ListCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestGetCourseNotFound(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.GetCourse("missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGetCourseDerivesSections(t *testing.T) {
	svc := newTestService(t)
	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "01 intro.mp4", 10)
	writeVideo(t, svc.Cfg.VideosDir, "go-basics", "section1", "02 setup.mp4", 10)
	require.NoError(t, svc.DB.Create(&models.Course{FolderName: "go-basics", CourseName: "go-basics"}).Error)

	course, sections, err := svc.GetCourse("go-basics")
	require.NoError(t, err)
	assert.Equal(t, "go-basics", course.FolderName)
	require.Len(t, sections, 1)
	assert.Equal(t, "section1", sections[0].SectionName)
	require.Len(t, sections[0].Videos, 2)

	names := []string{sections[0].Videos[0].VideoName, sections[0].Videos[1].VideoName}
	assert.ElementsMatch(t, []string{"01 intro.mp4", "02 setup.mp4"}, names)
	for _, video := range sections[0].Videos {
		assert.NotEmpty(t, video.Order)
		assert.Contains(t, video.URL, "http://localhost:4000/video/go-basics/section1/")
	}
}

func TestUpdateCourseInvalidatesCache(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.DB.Create(&models.Course{FolderName: "go-basics", CourseName: "go-basics"}).Error)

	_, err := svc.ListCourses()
	require.NoError(t, err)
	_, ok := svc.Cache.Get()
	require.True(t, ok)

	course, err := svc.UpdateCourse("go-basics", map[string]interface{}{"course_desc": "Learn Go"})
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", course.CourseDesc)

	_, ok = svc.Cache.Get()
	assert.False(t, ok)
}

func TestUpdateCourseRemovesReplacedImage(t *testing.T) {
	svc := newTestService(t)
	oldImage := filepath.Join(svc.Cfg.PublicDir, "old.png")
	require.NoError(t, os.WriteFile(oldImage, []byte("png"), 0o644))
	require.NoError(t, svc.DB.Create(&models.Course{
		FolderName: "go-basics",
		CourseName: "go-basics",
		ImagePath:  "http://localhost:4000/public/old.png",
	}).Error)

	course, err := svc.UpdateCourse("go-basics", map[string]interface{}{"image_path": ""})
	require.NoError(t, err)
	assert.Empty(t, course.ImagePath)
	assert.NoFileExists(t, oldImage)
}

func TestUpdateCourseRejectsEmptyUpdate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateCourse("go-basics", map[string]interface{}{})
	assert.ErrorIs(t, err, utils.ErrValidation)
}
