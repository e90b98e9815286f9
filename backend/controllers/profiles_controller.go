package controllers

import (
	"coursebay/backend/models"
	"coursebay/backend/progress"
	"coursebay/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfilesController struct {
	DB       *gorm.DB
	Tracker  *progress.Tracker
	Validate *validator.Validate
}

func NewProfilesController(db *gorm.DB, tracker *progress.Tracker) *ProfilesController {
	return &ProfilesController{DB: db, Tracker: tracker, Validate: validator.New()}
}

type ProfileRequest struct {
	ProfileName string `json:"profileName" validate:"required,min=1,max=50"`
}

type RenameProfileRequest struct {
	NewProfileName string `json:"newProfileName" validate:"required,min=1,max=50"`
}

type SaveProgressRequest struct {
	Section  string  `json:"section" validate:"required"`
	Video    string  `json:"video" validate:"required"`
	Position float64 `json:"position" validate:"gte=0"`
}

// GetProfiles godoc
// @Summary List profile names
// @Tags profiles
// @Produce json
// @Success 200 {array} string
// @Router /profiles [get]
func (pc *ProfilesController) GetProfiles(c *fiber.Ctx) error {
	var names []string
	if err := pc.DB.Model(&models.Profile{}).Order("profile_name").Pluck("profile_name", &names).Error; err != nil {
		return utils.InternalServerError(c, "Could not list profiles")
	}
	return c.JSON(emptyIfNil(names))
}

// CreateProfile creates a profile, or silently keeps the existing one so the
// frontend can treat "create" as "select".
func (pc *ProfilesController) CreateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "profileName is required")
	}
	if err := pc.Validate.Struct(req); err != nil {
		return utils.BadRequest(c, "profileName must be 1-50 characters", err.Error())
	}

	profile := models.Profile{ProfileName: req.ProfileName}
	if err := pc.DB.FirstOrCreate(&profile, profile).Error; err != nil {
		return utils.InternalServerError(c, "Could not create profile")
	}

	return c.JSON(fiber.Map{
		"message": "Profile created",
		"profile": req.ProfileName,
	})
}

// RenameProfile renames a profile and cascades the new name into every
// progress record.
func (pc *ProfilesController) RenameProfile(c *fiber.Ctx) error {
	oldName := param(c, "profileName")

	var req RenameProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "newProfileName is required")
	}
	if err := pc.Validate.Struct(req); err != nil {
		return utils.BadRequest(c, "newProfileName must be 1-50 characters", err.Error())
	}

	var count int64
	if err := pc.DB.Model(&models.Profile{}).Where("profile_name = ?", oldName).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query profile")
	}
	if count == 0 {
		return utils.NotFound(c, "Profile not found")
	}
	if req.NewProfileName != oldName {
		if err := pc.DB.Model(&models.Profile{}).Where("profile_name = ?", req.NewProfileName).Count(&count).Error; err != nil {
			return utils.InternalServerError(c, "Could not query profile")
		}
		if count > 0 {
			return utils.Error(c, fiber.StatusConflict, "Profile name already in use")
		}
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Profile{}).Where("profile_name = ?", oldName).
			Update("profile_name", req.NewProfileName).Error; err != nil {
			return err
		}
		return tx.Model(&models.Progress{}).Where("profile_name = ?", oldName).
			Update("profile_name", req.NewProfileName).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not rename profile")
	}

	return c.JSON(fiber.Map{
		"message": "Profile renamed",
		"profile": req.NewProfileName,
	})
}

// DeleteProfile removes a profile together with all its progress records.
func (pc *ProfilesController) DeleteProfile(c *fiber.Ctx) error {
	profileName := param(c, "profileName")

	var count int64
	if err := pc.DB.Model(&models.Profile{}).Where("profile_name = ?", profileName).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query profile")
	}
	if count == 0 {
		return utils.NotFound(c, "Profile not found")
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_name = ?", profileName).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		return tx.Where("profile_name = ?", profileName).Delete(&models.Profile{}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete profile")
	}

	return c.JSON(fiber.Map{"message": "Profile deleted"})
}

// GetProgress godoc
// @Summary Get playback progress for a profile and course
// @Tags profiles
// @Produce json
// @Success 200 {object} progress.Record
// @Failure 404 {object} utils.ErrorResponse
// @Router /profiles/{profileName}/progress/{folderName} [get]
func (pc *ProfilesController) GetProgress(c *fiber.Ctx) error {
	record, err := pc.Tracker.Get(param(c, "profileName"), param(c, "folderName"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(record)
}

// SaveProgress persists the latest playback position for the pair.
func (pc *ProfilesController) SaveProgress(c *fiber.Ctx) error {
	var req SaveProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "section, video and position are required")
	}
	if err := pc.Validate.Struct(req); err != nil {
		return utils.BadRequest(c, "section, video and position are required", err.Error())
	}

	record, err := pc.Tracker.Save(param(c, "profileName"), param(c, "folderName"), progress.Record{
		Section:  req.Section,
		Video:    req.Video,
		Position: req.Position,
	})
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Progress saved",
		"progress": record,
	})
}
