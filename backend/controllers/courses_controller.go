package controllers

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"coursebay/backend/catalog"
	"coursebay/backend/config"
	"coursebay/backend/models"
	"coursebay/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CoursesController struct {
	Catalog  *catalog.Service
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewCoursesController(svc *catalog.Service, cfg *config.Config) *CoursesController {
	return &CoursesController{Catalog: svc, Cfg: cfg, Validate: validator.New()}
}

type courseDetails struct {
	models.Course
	Sections []models.Section `json:"sections"`
}

// GetCourses godoc
// @Summary List courses
// @Description Returns all catalog rows, served from the result cache when fresh
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	courses, err := cc.Catalog.ListCourses()
	if err != nil {
		return utils.Fail(c, err)
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return c.JSON(courses)
}

// GetCourse godoc
// @Summary Get one course
// @Description Returns a course row together with its derived sections and videos
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{folderName} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	course, sections, err := cc.Catalog.GetCourse(param(c, "folderName"))
	if err != nil {
		return utils.Fail(c, err)
	}
	if sections == nil {
		sections = []models.Section{}
	}
	return c.JSON(courseDetails{Course: course, Sections: sections})
}

// UpdateCourse applies a partial metadata update from a multipart form. An
// uploaded "image" file replaces the stored image asset; an empty "image"
// text field deletes it; an absent field leaves it alone.
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	folderName := param(c, "folderName")

	form, err := c.MultipartForm()
	if err != nil {
		return utils.BadRequest(c, "Multipart form expected")
	}

	fields := map[string]interface{}{}
	text := func(key, column string) {
		if values, ok := form.Value[key]; ok && len(values) > 0 {
			fields[column] = values[0]
		}
	}
	text("courseName", "course_name")
	text("courseDesc", "course_desc")
	text("courseInstructors", "course_instructors")
	text("courseUpdate", "course_update")
	text("courseLocale", "course_locale")

	if values, ok := form.Value["courseProvider"]; ok && len(values) > 0 {
		provider := values[0]
		if provider != models.ProviderUnset {
			if err := cc.Validate.Var(provider, "oneof=udemy other"); err != nil {
				return utils.BadRequest(c, "courseProvider must be one of: udemy, other")
			}
		}
		fields["course_provider"] = provider
	}
	if values, ok := form.Value["courseRating"]; ok && len(values) > 0 {
		rating := 0.0
		if values[0] != "" {
			rating, err = strconv.ParseFloat(strings.ReplaceAll(values[0], ",", "."), 64)
			if err != nil || rating < 0 {
				return utils.BadRequest(c, "courseRating must be a non-negative number")
			}
		}
		fields["course_rating"] = rating
	}

	if files := form.File["image"]; len(files) > 0 {
		header := files[0]
		name := uuid.NewString() + "-" + strings.ReplaceAll(header.Filename, " ", "-")
		if err := c.SaveFile(header, filepath.Join(cc.Cfg.PublicDir, name)); err != nil {
			return utils.InternalServerError(c, "Could not store image")
		}
		fields["image_path"] = cc.Cfg.PublicBaseURL + "/public/" + url.PathEscape(name)
	} else if values, ok := form.Value["image"]; ok && len(values) > 0 && values[0] == "" {
		fields["image_path"] = ""
	}

	course, err := cc.Catalog.UpdateCourse(folderName, fields)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Course updated",
		"folderName": folderName,
		"imagePath":  course.ImagePath,
	})
}

// SyncCourses godoc
// @Summary Reconcile the catalog with the video directory
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /courses/sync [post]
func (cc *CoursesController) SyncCourses(c *fiber.Ctx) error {
	added, removed, err := cc.Catalog.Sync()
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":        "File sync completed",
		"newCourses":     emptyIfNil(added),
		"removedCourses": emptyIfNil(removed),
	})
}

// CalculateHours runs the duration pass over courses whose hours are unset
// or whose files changed since the last pass.
func (cc *CoursesController) CalculateHours(c *fiber.Ctx) error {
	updated, skipped, err := cc.Catalog.RecomputeHours(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	if updated == nil {
		updated = []catalog.CourseHours{}
	}
	message := "Hours calculated and updated"
	if len(updated) == 0 {
		message = "No courses needed updating"
	}
	return c.JSON(fiber.Map{
		"message":        message,
		"updatedCourses": updated,
		"skippedCourses": emptyIfNil(skipped),
	})
}

func (cc *CoursesController) EnrichPending(c *fiber.Ctx) error {
	return cc.enrich(c, false)
}

func (cc *CoursesController) EnrichForced(c *fiber.Ctx) error {
	return cc.enrich(c, true)
}

func (cc *CoursesController) enrich(c *fiber.Ctx, force bool) error {
	if cc.Catalog.Enricher == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "No metadata source configured")
	}
	updated, skipped, err := cc.Catalog.Enrich(c.Context(), force)
	if err != nil {
		return utils.Fail(c, err)
	}
	message := "Course metadata synchronized"
	if len(updated) == 0 {
		message = "No courses needed enrichment"
	}
	return c.JSON(fiber.Map{
		"message":        message,
		"updatedCourses": emptyIfNil(updated),
		"skippedCourses": emptyIfNil(skipped),
	})
}
