package catalog

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"coursebay/backend/models"
)

const videoExt = ".mp4"

func listSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func listVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), videoExt) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Sections derives the section/video tree of a course straight from the
// filesystem. Nothing here is persisted; the catalog row only carries
// metadata while the tree is always current.
func Sections(videosDir, folderName, baseURL string) ([]models.Section, error) {
	sections, err := listSubdirs(filepath.Join(videosDir, folderName))
	if err != nil {
		return nil, err
	}

	result := make([]models.Section, 0, len(sections))
	for _, section := range sections {
		videos, err := listVideos(filepath.Join(videosDir, folderName, section))
		if err != nil {
			return nil, err
		}
		items := make([]models.Video, 0, len(videos))
		for _, video := range videos {
			items = append(items, models.Video{
				VideoName: video,
				Order:     orderToken(video),
				URL:       StreamURL(baseURL, folderName, section, video),
			})
		}
		result = append(result, models.Section{SectionName: section, Videos: items})
	}
	return result, nil
}

// orderToken is the leading whitespace-delimited token of a video filename.
// Clients use it for display sorting; the server exposes it verbatim and
// makes no promises about its shape.
func orderToken(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// StreamURL builds the playback URL for a video, keyed by course, section
// and the file basename without its extension.
func StreamURL(baseURL, folderName, section, video string) string {
	name := strings.TrimSuffix(video, videoExt)
	return baseURL + "/video/" +
		url.PathEscape(folderName) + "/" +
		url.PathEscape(section) + "/" +
		url.PathEscape(name)
}
