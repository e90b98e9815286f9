package models

// Course providers form a closed set; the empty string means "not set yet".
const (
	ProviderUdemy = "udemy"
	ProviderOther = "other"
	ProviderUnset = ""
)

// Course is one row per top-level folder under the video root. The folder
// name is the identity: rows are created when a folder first shows up during
// sync and deleted when it disappears. Sections and videos are never stored,
// they are re-derived from the filesystem on every read.
type Course struct {
	FolderName        string  `gorm:"primaryKey" json:"folderName"`
	CourseName        string  `json:"courseName"`
	CourseDesc        string  `json:"courseDesc"`
	ImagePath         string  `json:"imagePath"`
	CourseProvider    string  `json:"courseProvider"`
	CourseInstructors string  `json:"courseInstructors"`
	CourseRating      float64 `gorm:"default:0" json:"courseRating"`
	CourseUpdate      string  `json:"courseUpdate"`
	CourseLocale      string  `json:"courseLocale"`
	CourseHours       float64 `gorm:"default:0" json:"courseHours"`
	CourseHash        string  `gorm:"default:''" json:"-"`
	CourseFilled      bool    `gorm:"default:false" json:"courseFilled"`
}

type Profile struct {
	ProfileName string `gorm:"primaryKey" json:"profileName"`
}

// Progress keeps the last playback position per (profile, course). Saves
// replace any prior rows for the pair, so the highest id is authoritative.
// Foreign keys are checked explicitly before writes rather than left to
// sqlite enforcement.
type Progress struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	ProfileName string  `gorm:"not null;index:idx_progress_folder_profile,priority:2" json:"-"`
	FolderName  string  `gorm:"not null;index:idx_progress_folder_profile,priority:1" json:"-"`
	Section     string  `gorm:"not null" json:"section"`
	Video       string  `gorm:"not null" json:"video"`
	Position    float64 `gorm:"default:0" json:"position"`
}

// Section and Video are derived views over the directory tree, shaped for
// the JSON the frontend expects.
type Section struct {
	SectionName string  `json:"sectionName"`
	Videos      []Video `json:"videos"`
}

type Video struct {
	VideoName string `json:"videoName"`
	Order     string `json:"order"`
	URL       string `json:"url"`
}
