package compress

// JobStatus is the queryable progress snapshot of one album compression job.
type JobStatus struct {
	JobID     string `json:"job_id"`
	AlbumID   string `json:"album_id"`
	Status    string `json:"status"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
	Progress  int    `json:"progress"`
	Error     string `json:"error,omitempty"`
}
