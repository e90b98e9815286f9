package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"coursebay/backend/config"
	"coursebay/backend/models"
	"coursebay/backend/utils"

	"gorm.io/gorm"
)

// Prober reports the duration of a single media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Service owns the catalog store and the result cache. It is built once at
// startup and handed to the controllers; nothing else is allowed to mutate
// course rows.
type Service struct {
	DB       *gorm.DB
	Cache    *ResultCache
	Cfg      *config.Config
	Prober   Prober
	Enricher Enricher
	Logger   *log.Logger
}

func NewService(db *gorm.DB, cache *ResultCache, cfg *config.Config, prober Prober, logger *log.Logger) *Service {
	return &Service{
		DB:     db,
		Cache:  cache,
		Cfg:    cfg,
		Prober: prober,
		Logger: logger,
	}
}

// ListCourses returns all course rows, served from the cache when fresh.
func (s *Service) ListCourses() ([]models.Course, error) {
	if courses, ok := s.Cache.Get(); ok {
		return courses, nil
	}

	var courses []models.Course
	if err := s.DB.Order("folder_name").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	s.Cache.Set(courses)
	return courses, nil
}

// GetCourse returns one course row plus its derived section/video tree. A
// course whose folder vanished since the last sync comes back with an empty
// tree; the next sync will delete the row.
func (s *Service) GetCourse(folderName string) (models.Course, []models.Section, error) {
	var course models.Course
	err := s.DB.Where("folder_name = ?", folderName).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Course{}, nil, fmt.Errorf("course %q: %w", folderName, utils.ErrNotFound)
	}
	if err != nil {
		return models.Course{}, nil, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	sections, err := Sections(s.Cfg.VideosDir, folderName, s.Cfg.PublicBaseURL)
	if err != nil {
		sections = []models.Section{}
	}
	return course, sections, nil
}

// UpdateCourse applies a partial metadata update. When the row does not exist
// yet (a folder edited before its first sync) it is created with the given
// fields. The cache is invalidated after the write.
func (s *Service) UpdateCourse(folderName string, fields map[string]interface{}) (models.Course, error) {
	if len(fields) == 0 {
		return models.Course{}, fmt.Errorf("no fields to update: %w", utils.ErrValidation)
	}

	var course models.Course
	err := s.DB.Where("folder_name = ?", folderName).First(&course).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		course = models.Course{FolderName: folderName, CourseName: folderName}
		if err := s.DB.Create(&course).Error; err != nil {
			return models.Course{}, fmt.Errorf("%w: %v", utils.ErrStore, err)
		}
	case err != nil:
		return models.Course{}, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	if newImage, ok := fields["image_path"]; ok && course.ImagePath != "" && course.ImagePath != newImage {
		s.RemoveImage(course.ImagePath)
	}

	if err := s.DB.Model(&models.Course{}).Where("folder_name = ?", folderName).Updates(fields).Error; err != nil {
		return models.Course{}, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	if err := s.DB.Where("folder_name = ?", folderName).First(&course).Error; err != nil {
		return models.Course{}, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	s.Cache.Invalidate()
	return course, nil
}

// RemoveImage deletes a generated image asset given the public URL stored on
// a course row. Missing files are fine; anything else is only logged because
// asset cleanup must never fail the catalog write that triggered it.
func (s *Service) RemoveImage(imagePath string) {
	if imagePath == "" {
		return
	}
	full := filepath.Join(s.Cfg.PublicDir, path.Base(imagePath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		if s.Logger != nil {
			s.Logger.Printf("could not remove image %s: %v", full, err)
		}
	}
}
