package catalog

import (
	"context"
	"fmt"

	"coursebay/backend/models"
	"coursebay/backend/utils"
)

// CourseData is the descriptive metadata an external source supplies for a
// course. ImagePath, when non-empty, must already be a servable public URL;
// downloading and converting images is the enricher's problem.
type CourseData struct {
	CourseName        string
	CourseDesc        string
	ImagePath         string
	CourseInstructors string
	CourseRating      float64
	CourseUpdate      string
	CourseLocale      string
}

// Enricher fetches descriptive metadata for one course folder from an
// external catalog site. Implementations live outside this module.
type Enricher interface {
	FetchCourseData(ctx context.Context, folderName string) (CourseData, error)
}

// Enrich applies external metadata to every udemy-provider course, or only
// to the ones not yet filled when force is false. A failing course is
// skipped and reported rather than aborting the batch; the enrichment
// upstream being flaky must never damage the rest of the catalog.
func (s *Service) Enrich(ctx context.Context, force bool) (updated, skipped []string, err error) {
	if s.Enricher == nil {
		return nil, nil, fmt.Errorf("no enricher configured: %w", utils.ErrUpstream)
	}

	query := s.DB.Where("course_provider = ?", models.ProviderUdemy)
	if !force {
		query = query.Where("course_filled = ?", false)
	}
	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	for _, course := range courses {
		data, fetchErr := s.Enricher.FetchCourseData(ctx, course.FolderName)
		if fetchErr != nil {
			if s.Logger != nil {
				s.Logger.Printf("enrich %s: %v", course.FolderName, fetchErr)
			}
			skipped = append(skipped, course.FolderName)
			continue
		}

		if course.ImagePath != "" && data.ImagePath != "" && data.ImagePath != course.ImagePath {
			s.RemoveImage(course.ImagePath)
		}

		writeErr := s.DB.Model(&models.Course{}).
			Where("folder_name = ?", course.FolderName).
			Updates(map[string]interface{}{
				"course_name":        data.CourseName,
				"course_desc":        data.CourseDesc,
				"image_path":         data.ImagePath,
				"course_instructors": data.CourseInstructors,
				"course_rating":      data.CourseRating,
				"course_update":      data.CourseUpdate,
				"course_locale":      data.CourseLocale,
				"course_filled":      true,
			}).Error
		if writeErr != nil {
			skipped = append(skipped, course.FolderName)
			continue
		}
		updated = append(updated, course.FolderName)
	}

	if len(updated) > 0 {
		s.Cache.Invalidate()
	}
	return updated, skipped, nil
}
