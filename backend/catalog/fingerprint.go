package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint derives a change-detection hash for one course folder from the
// (path, size, mtime) of every video file under it. Entries are sorted before
// hashing so directory listing order never affects the result. Any filesystem
// error yields "", which callers treat as "unknown, recompute later". Change
// detection is the only purpose here, so a fast non-cryptographic digest is
// enough.
func Fingerprint(videosDir, folderName string) string {
	courseDir := filepath.Join(videosDir, folderName)
	sections, err := listSubdirs(courseDir)
	if err != nil {
		return ""
	}

	var entries []string
	for _, section := range sections {
		sectionDir := filepath.Join(courseDir, section)
		videos, err := listVideos(sectionDir)
		if err != nil {
			return ""
		}
		for _, video := range videos {
			videoPath := filepath.Join(sectionDir, video)
			info, err := os.Stat(videoPath)
			if err != nil {
				return ""
			}
			entries = append(entries, fmt.Sprintf("%s:%d:%d", videoPath, info.Size(), info.ModTime().UnixMilli()))
		}
	}

	sort.Strings(entries)
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(entries, "|")))
}
