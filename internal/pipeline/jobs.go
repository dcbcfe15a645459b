package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docline/internal/outline"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusParsing     JobStatus = "parsing"
	StatusAnalyzing   JobStatus = "analyzing"
	StatusClassifying JobStatus = "classifying"
	StatusLinking     JobStatus = "linking"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
)

// Job tracks the state of a single document extraction.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Profile  string `json:"profile"`
	Sections bool   `json:"sections"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *outline.Document
	errors   []string
}

// JobStore is a thread-safe in-memory job registry with TTL eviction of
// finished jobs.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// FindByHash returns a live job carrying the same content hash. Failed
// jobs don't count: re-submitting content that failed gets a fresh run.
func (s *JobStore) FindByHash(hash string) *Job {
	if hash == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		job.mu.Lock()
		match := job.ContentHash == hash && job.Status != StatusFailed
		job.mu.Unlock()
		if match {
			return job
		}
	}
	return nil
}

// CountByStatus tallies jobs per status.
func (s *JobStore) CountByStatus() map[JobStatus]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[JobStatus]int)
	for _, job := range s.jobs {
		job.mu.Lock()
		counts[job.Status]++
		job.mu.Unlock()
	}
	return counts
}

// Cleanup removes finished jobs that have outlived the TTL. Jobs still
// in flight stay regardless of age.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		done := job.Status == StatusCompleted || job.Status == StatusFailed
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if done && expired {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the finished document and releases the upload bytes,
// which have no further use.
func (j *Job) SetResult(doc outline.Document) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &doc
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the finished document, if the job has produced one.
func (j *Job) Result() (outline.Document, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.result == nil {
		return outline.Document{}, false
	}
	return *j.result, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	Profile   string    `json:"profile"`
	Sections  bool      `json:"sections"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Filename:  j.Filename,
		Profile:   j.Profile,
		Sections:  j.Sections,
		Error:     strings.Join(j.errors, "; "),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
