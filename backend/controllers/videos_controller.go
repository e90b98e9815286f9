package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursebay/backend/config"
	"coursebay/backend/stream"
	"coursebay/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type VideosController struct {
	Cfg *config.Config
}

func NewVideosController(cfg *config.Config) *VideosController {
	return &VideosController{Cfg: cfg}
}

// Stream serves one video file. Without a Range header the whole file goes
// out as 200; with one, the requested window goes out as 206 with a
// Content-Range header. Either way the file is streamed from disk chunk by
// chunk, never loaded into memory.
func (vc *VideosController) Stream(c *fiber.Ctx) error {
	folderName := param(c, "folderName")
	section := param(c, "section")
	video := param(c, "video")

	videoPath := filepath.Join(vc.Cfg.VideosDir, folderName, section, video+".mp4")

	// Path segments must stay inside the video root.
	root, err := filepath.Abs(vc.Cfg.VideosDir)
	if err != nil {
		return utils.InternalServerError(c, "Could not resolve video root")
	}
	abs, err := filepath.Abs(videoPath)
	if err != nil || !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return utils.NotFound(c, "Video not found")
	}

	info, err := os.Stat(videoPath)
	if err != nil || info.IsDir() {
		return utils.NotFound(c, "Video not found")
	}

	c.Set(fiber.HeaderContentType, "video/mp4")
	c.Set(fiber.HeaderAcceptRanges, "bytes")

	rng, err := stream.ParseRange(c.Get(fiber.HeaderRange), info.Size())
	if err != nil {
		c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes */%d", info.Size()))
		return c.SendStatus(fiber.StatusRequestedRangeNotSatisfiable)
	}

	body, err := stream.Open(videoPath, rng)
	if err != nil {
		return utils.InternalServerError(c, "Could not open video")
	}

	if rng == nil {
		return c.SendStream(body, int(info.Size()))
	}

	c.Status(fiber.StatusPartialContent)
	c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, info.Size()))
	return c.SendStream(body, int(rng.Length()))
}
