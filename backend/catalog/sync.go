package catalog

import (
	"fmt"

	"coursebay/backend/models"
	"coursebay/backend/utils"

	"gorm.io/gorm"
)

// Sync reconciles course rows against the folders currently under the video
// root. New folders are inserted with default metadata and a fresh
// fingerprint, changed folders get only their fingerprint updated (hours are
// left to RecomputeHours, which is far more expensive), and rows whose folder
// disappeared are deleted together with their progress records. All row
// changes happen in one transaction; image assets and the cache are touched
// only after commit. Running Sync twice with no filesystem change is a no-op.
//
// Overlapping Sync calls are not serialized against each other. Each runs in
// its own transaction, so concurrent calls can do redundant work but cannot
// corrupt the store.
func (s *Service) Sync() (added, removed []string, err error) {
	folders, err := listSubdirs(s.Cfg.VideosDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: listing video root: %v", utils.ErrIO, err)
	}

	var existing []models.Course
	if err := s.DB.Select("folder_name", "course_hash", "image_path").Find(&existing).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrStore, err)
	}

	onDisk := make(map[string]bool, len(folders))
	for _, folder := range folders {
		onDisk[folder] = true
	}
	known := make(map[string]models.Course, len(existing))
	for _, course := range existing {
		known[course.FolderName] = course
	}

	var staleImages []string
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, folder := range folders {
			// A fingerprint error degrades to "": the stored hash will
			// never match it, so the next hours pass refreshes the course.
			hash := Fingerprint(s.Cfg.VideosDir, folder)

			row, ok := known[folder]
			if !ok {
				course := models.Course{
					FolderName: folder,
					CourseName: folder,
					CourseHash: hash,
				}
				if err := tx.Create(&course).Error; err != nil {
					return err
				}
				added = append(added, folder)
			} else if row.CourseHash != hash {
				if err := tx.Model(&models.Course{}).
					Where("folder_name = ?", folder).
					Update("course_hash", hash).Error; err != nil {
					return err
				}
			}
		}

		for _, row := range existing {
			if onDisk[row.FolderName] {
				continue
			}
			if err := tx.Where("folder_name = ?", row.FolderName).Delete(&models.Course{}).Error; err != nil {
				return err
			}
			if err := tx.Where("folder_name = ?", row.FolderName).Delete(&models.Progress{}).Error; err != nil {
				return err
			}
			if row.ImagePath != "" {
				staleImages = append(staleImages, row.ImagePath)
			}
			removed = append(removed, row.FolderName)
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrStore, txErr)
	}

	for _, image := range staleImages {
		s.RemoveImage(image)
	}
	s.Cache.Invalidate()
	return added, removed, nil
}
