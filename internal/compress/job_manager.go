package compress

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type jobContext struct {
	albumID      string
	createdAt    time.Time
	status       string
	processed    int
	failed       int
	total        int
	errorMessage string
}

// JobManager tracks compression jobs so their progress stays queryable after
// the fire-and-forget launch. It also holds the per-album exclusion: at most
// one running job per album folder, so two triggers for the same album cannot
// race on the same files.
type JobManager struct {
	contexts map[string]*jobContext
	active   map[string]string // albumID -> running jobID
	mu       sync.RWMutex
}

func NewJobManager() *JobManager {
	jm := &JobManager{
		contexts: make(map[string]*jobContext),
		active:   make(map[string]string),
	}

	go jm.cleanupExpiredJobs()

	return jm
}

func (jm *JobManager) cleanupExpiredJobs() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		jm.mu.Lock()
		now := time.Now()
		for jobID, ctx := range jm.contexts {
			// Remove finished contexts older than 24 hours
			if ctx.status != StatusProcessing && now.Sub(ctx.createdAt) > 24*time.Hour {
				delete(jm.contexts, jobID)
			}
		}
		jm.mu.Unlock()
	}
}

// Start registers a job for the album. When a job for the same album is
// already running it returns that job's ID and reports false.
func (jm *JobManager) Start(albumID string) (string, bool) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if runningID, busy := jm.active[albumID]; busy {
		return runningID, false
	}

	jobID := uuid.NewString()
	jm.contexts[jobID] = &jobContext{
		albumID:   albumID,
		createdAt: time.Now(),
		status:    StatusProcessing,
	}
	jm.active[albumID] = jobID
	return jobID, true
}

func (jm *JobManager) SetTotal(jobID string, total int) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if ctx, exists := jm.contexts[jobID]; exists {
		ctx.total = total
	}
}

func (jm *JobManager) RecordSuccess(jobID string) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if ctx, exists := jm.contexts[jobID]; exists {
		ctx.processed++
	}
}

func (jm *JobManager) RecordFailure(jobID string) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if ctx, exists := jm.contexts[jobID]; exists {
		ctx.failed++
	}
}

func (jm *JobManager) MarkCompleted(jobID string) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if ctx, exists := jm.contexts[jobID]; exists {
		ctx.status = StatusCompleted
		delete(jm.active, ctx.albumID)
	}
}

func (jm *JobManager) MarkFailed(jobID string, errorMessage string) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if ctx, exists := jm.contexts[jobID]; exists {
		ctx.status = StatusFailed
		ctx.errorMessage = errorMessage
		delete(jm.active, ctx.albumID)
	}
}

func (jm *JobManager) Get(jobID string) (*JobStatus, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	ctx, exists := jm.contexts[jobID]
	if !exists {
		return nil, false
	}

	status := &JobStatus{
		JobID:     jobID,
		AlbumID:   ctx.albumID,
		Status:    ctx.status,
		Processed: ctx.processed,
		Failed:    ctx.failed,
		Total:     ctx.total,
		Error:     ctx.errorMessage,
	}
	if ctx.total > 0 {
		status.Progress = ((ctx.processed + ctx.failed) * 100) / ctx.total
	}
	return status, true
}
