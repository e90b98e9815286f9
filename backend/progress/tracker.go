package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"coursebay/backend/models"
	"coursebay/backend/utils"

	"gorm.io/gorm"
)

// Record is the caller-facing playback position.
type Record struct {
	Section  string  `json:"section"`
	Video    string  `json:"video"`
	Position float64 `json:"position"`
}

// Tracker persists last-known playback positions per (profile, course).
type Tracker struct {
	DB        *gorm.DB
	VideosDir string
}

func NewTracker(db *gorm.DB, videosDir string) *Tracker {
	return &Tracker{DB: db, VideosDir: videosDir}
}

// Get returns the most recently saved position for the pair. The first read
// for a course seeds a record at the first sorted section's first sorted
// video so later reads are stable; a course with no videos yields an empty
// record that is not persisted. Profiles are created on first use, so the
// seed ensures the profile row exists before writing.
func (t *Tracker) Get(profileName, folderName string) (Record, error) {
	var row models.Progress
	err := t.DB.Where("profile_name = ? AND folder_name = ?", profileName, folderName).
		Order("id DESC").First(&row).Error
	if err == nil {
		return Record{Section: row.Section, Video: row.Video, Position: row.Position}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	if err := t.courseExists(folderName); err != nil {
		return Record{}, err
	}

	section, video, err := t.firstVideo(folderName)
	if err != nil {
		return Record{}, err
	}
	if video == "" {
		return Record{}, nil
	}

	seed := models.Progress{
		ProfileName: profileName,
		FolderName:  folderName,
		Section:     section,
		Video:       video,
	}
	txErr := t.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.FirstOrCreate(&models.Profile{}, models.Profile{ProfileName: profileName}).Error; err != nil {
			return err
		}
		return tx.Create(&seed).Error
	})
	if txErr != nil {
		return Record{}, fmt.Errorf("%w: %v", utils.ErrStore, txErr)
	}
	return Record{Section: section, Video: video, Position: 0}, nil
}

// Save upserts the position for the pair: all earlier rows for (profile,
// course) are superseded so exactly one record stays authoritative. Writes
// of any position delta are accepted; debouncing tiny seeks is the client's
// business.
func (t *Tracker) Save(profileName, folderName string, rec Record) (Record, error) {
	if rec.Section == "" || rec.Video == "" {
		return Record{}, fmt.Errorf("section and video are required: %w", utils.ErrValidation)
	}
	if rec.Position < 0 {
		return Record{}, fmt.Errorf("position must be >= 0: %w", utils.ErrValidation)
	}

	if err := t.profileExists(profileName); err != nil {
		return Record{}, err
	}
	if err := t.courseExists(folderName); err != nil {
		return Record{}, err
	}

	row := models.Progress{
		ProfileName: profileName,
		FolderName:  folderName,
		Section:     rec.Section,
		Video:       rec.Video,
		Position:    rec.Position,
	}
	txErr := t.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_name = ? AND folder_name = ?", profileName, folderName).
			Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if txErr != nil {
		return Record{}, fmt.Errorf("%w: %v", utils.ErrStore, txErr)
	}
	return rec, nil
}

func (t *Tracker) profileExists(profileName string) error {
	var count int64
	if err := t.DB.Model(&models.Profile{}).Where("profile_name = ?", profileName).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStore, err)
	}
	if count == 0 {
		return fmt.Errorf("profile %q: %w", profileName, utils.ErrNotFound)
	}
	return nil
}

func (t *Tracker) courseExists(folderName string) error {
	var count int64
	if err := t.DB.Model(&models.Course{}).Where("folder_name = ?", folderName).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStore, err)
	}
	if count == 0 {
		return fmt.Errorf("course %q: %w", folderName, utils.ErrNotFound)
	}
	return nil
}

// firstVideo picks the first video of the first section in sorted order.
// Only the first section is considered: a course whose opening section holds
// no videos gets no seed.
func (t *Tracker) firstVideo(folderName string) (section, video string, err error) {
	courseDir := filepath.Join(t.VideosDir, folderName)
	entries, err := os.ReadDir(courseDir)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrIO, err)
	}
	var sections []string
	for _, entry := range entries {
		if entry.IsDir() {
			sections = append(sections, entry.Name())
		}
	}
	if len(sections) == 0 {
		return "", "", nil
	}
	sort.Strings(sections)
	section = sections[0]

	entries, err = os.ReadDir(filepath.Join(courseDir, section))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrIO, err)
	}
	var videos []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".mp4") {
			videos = append(videos, entry.Name())
		}
	}
	if len(videos) == 0 {
		return section, "", nil
	}
	sort.Strings(videos)
	return section, videos[0], nil
}
