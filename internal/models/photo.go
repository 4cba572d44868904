package models

import "time"

// RepairJobPhoto is a photo attached to a repair job. Rows are removed by
// FK cascade when the job is deleted; the stored file is cleaned up
// best-effort afterwards.
type RepairJobPhoto struct {
	ID          int       `json:"id"`
	RepairJobID int       `json:"repair_job_id"`
	ObjectKey   string    `json:"-"` // storage key, repair_photos/<job_id>/<name>
	Filename    string    `json:"filename"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
