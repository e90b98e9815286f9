package catalog

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"coursebay/backend/models"
	"coursebay/backend/utils"
)

// CourseHours reports the recomputed duration of one course.
type CourseHours struct {
	FolderName  string  `json:"folderName"`
	CourseHours float64 `json:"courseHours"`
}

// RecomputeHours probes media durations for every course whose stored hours
// are still zero or whose files changed since the stored fingerprint, and
// writes back both the new hours and the refreshed fingerprint. Probing
// opens and parses every file, which is why this pass is decoupled from
// Sync. A failing course is skipped and reported; it does not abort the
// batch.
func (s *Service) RecomputeHours(ctx context.Context) (updated []CourseHours, skipped []string, err error) {
	var courses []models.Course
	if err := s.DB.Select("folder_name", "course_hours", "course_hash").Find(&courses).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	for _, course := range courses {
		current := Fingerprint(s.Cfg.VideosDir, course.FolderName)
		if course.CourseHours != 0 && current == course.CourseHash {
			continue
		}

		hours, probeErr := s.courseHours(ctx, course.FolderName)
		if probeErr != nil {
			if s.Logger != nil {
				s.Logger.Printf("hours for %s: %v", course.FolderName, probeErr)
			}
			skipped = append(skipped, course.FolderName)
			continue
		}

		writeErr := s.DB.Model(&models.Course{}).
			Where("folder_name = ?", course.FolderName).
			Updates(map[string]interface{}{
				"course_hours": hours,
				"course_hash":  current,
			}).Error
		if writeErr != nil {
			skipped = append(skipped, course.FolderName)
			continue
		}
		updated = append(updated, CourseHours{FolderName: course.FolderName, CourseHours: hours})
	}

	if len(updated) > 0 {
		s.Cache.Invalidate()
	}
	return updated, skipped, nil
}

// courseHours sums the duration of every video in the course and converts to
// hours rounded to one decimal.
func (s *Service) courseHours(ctx context.Context, folderName string) (float64, error) {
	courseDir := filepath.Join(s.Cfg.VideosDir, folderName)
	sections, err := listSubdirs(courseDir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrIO, err)
	}

	var totalSeconds float64
	for _, section := range sections {
		sectionDir := filepath.Join(courseDir, section)
		videos, err := listVideos(sectionDir)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", utils.ErrIO, err)
		}
		for _, video := range videos {
			seconds, err := s.Prober.Duration(ctx, filepath.Join(sectionDir, video))
			if err != nil {
				return 0, err
			}
			totalSeconds += seconds
		}
	}

	return math.Round(totalSeconds/3600*10) / 10, nil
}
