package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docline/internal/outline"
	"github.com/dgallion1/docline/internal/sink"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusAnalyzing, "analyzing layout"},
		{StatusClassifying, "classifying"},
		{StatusLinking, "linking sections"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SnapshotJoinsErrors(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("parse: bad header")
	job.AddError("retry exhausted")

	snap := job.Snapshot()
	want := "parse: bad header; retry exhausted"
	if snap.Error != want {
		t.Errorf("expected error %q, got %q", want, snap.Error)
	}
}

func TestJob_SnapshotCarriesRequestFields(t *testing.T) {
	job := &Job{
		ID:       "snap-1",
		Status:   StatusQueued,
		Filename: "report.pdf",
		Profile:  "strict",
		Sections: true,
	}
	snap := job.Snapshot()
	if snap.Filename != "report.pdf" {
		t.Errorf("expected filename %q, got %q", "report.pdf", snap.Filename)
	}
	if snap.Profile != "strict" || !snap.Sections {
		t.Errorf("expected profile/sections to survive, got %+v", snap)
	}
	if snap.Error != "" {
		t.Errorf("expected empty error, got %q", snap.Error)
	}
}

func TestJob_ResultLifecycle(t *testing.T) {
	job := &Job{ID: "result-test"}
	if _, ok := job.Result(); ok {
		t.Fatal("expected no result before completion")
	}

	job.SetFileData([]byte("raw upload bytes"))
	doc := outline.BuildDocument("Annual Report", []outline.Heading{
		{Level: outline.H1, Text: "Introduction", Page: 1},
	})
	job.SetResult(doc)

	got, ok := job.Result()
	if !ok {
		t.Fatal("expected result after SetResult")
	}
	if got.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", got.Title)
	}
	if len(got.Outline) != 1 || got.Outline[0].Text != "Introduction" {
		t.Errorf("unexpected outline: %+v", got.Outline)
	}
	if job.FileData() != nil {
		t.Error("expected upload bytes released once the result is set")
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_FindByHash(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "dup-1", ContentHash: "abc123", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.FindByHash("abc123"); got == nil || got.ID != "dup-1" {
		t.Errorf("expected to find job by hash, got %v", got)
	}
	if store.FindByHash("different") != nil {
		t.Error("expected nil for unknown hash")
	}
	if store.FindByHash("") != nil {
		t.Error("expected nil for empty hash")
	}

	// A failed job should not satisfy dedup; the upload deserves a rerun.
	job.SetStatus(StatusFailed, "parsing")
	if store.FindByHash("abc123") != nil {
		t.Error("expected failed job to be ignored by hash lookup")
	}
}

func TestJobStore_CountByStatus(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Put(&Job{ID: "1", Status: StatusQueued})
	store.Put(&Job{ID: "2", Status: StatusQueued})
	store.Put(&Job{ID: "3", Status: StatusCompleted})

	counts := store.CountByStatus()
	if counts[StatusQueued] != 2 {
		t.Errorf("expected 2 queued, got %d", counts[StatusQueued])
	}
	if counts[StatusCompleted] != 1 {
		t.Errorf("expected 1 completed, got %d", counts[StatusCompleted])
	}
	if counts[StatusFailed] != 0 {
		t.Errorf("expected 0 failed, got %d", counts[StatusFailed])
	}
}

func TestJobStore_CleanupSweepsOnlyFinishedJobs(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	finished := &Job{ID: "finished", Status: StatusCompleted, UpdatedAt: time.Now()}
	running := &Job{ID: "running", Status: StatusParsing, UpdatedAt: time.Now()}
	store.Put(finished)
	store.Put(running)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "fresh", Status: StatusCompleted, UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("finished") != nil {
		t.Error("expected expired finished job to be cleaned up")
	}
	if store.Get("running") == nil {
		t.Error("expected in-flight job to survive cleanup regardless of age")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestNewJobID_Shape(t *testing.T) {
	id := NewJobID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(id), id)
	}
	for _, c := range id {
		if !strings.ContainsRune(crockford, c) {
			t.Fatalf("unexpected character %q in ulid %q", c, id)
		}
	}
}

func TestNewJobID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewJobID()
		if seen[id] {
			t.Fatalf("duplicate ulid after %d ids: %q", i, id)
		}
		seen[id] = true
	}
}

func TestBackoff_Bounds(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		base := time.Duration(1<<uint(attempt)) * time.Second
		if base > 30*time.Second {
			base = 30 * time.Second
		}
		d := Backoff(attempt)
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: expected backoff in [%v, %v], got %v", attempt, base, base+base/2, d)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&sink.RetryableError{StatusCode: 503}) {
		t.Error("expected 503 sink error to be retryable")
	}
	if !IsRetryable(fmt.Errorf("deliver: %w", &sink.RetryableError{StatusCode: 500})) {
		t.Error("expected wrapped retryable error to stay retryable")
	}
	if IsRetryable(errors.New("permanent failure")) {
		t.Error("expected plain error to be permanent")
	}
}
