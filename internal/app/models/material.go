package models

import "time"

// CourseMaterial is a file a lecturer has uploaded for a course (lecture
// notes, slides, reading lists). The file itself lives on local disk; the
// row records its metadata and location.
type CourseMaterial struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	FileName    string    `json:"fileName" db:"file_name"`
	FilePath    string    `json:"filePath" db:"file_path"`
	FileSize    int64     `json:"fileSize" db:"file_size"`
	ContentType string    `json:"contentType" db:"content_type"` // MIME type
	UploadedBy  int64     `json:"uploadedBy" db:"uploaded_by"`   // Staff ID of the uploader
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course   *Course `json:"course,omitempty"`
	Uploader *Staff  `json:"uploader,omitempty"`
}
