package services

import (
	"context"
	"log"
	"sync"
)

// Runtime owns the process-wide model and index state: the embedding
// provider and the job index. It replaces free-floating globals with one
// object constructed at startup and injected into the handlers.
type Runtime struct {
	gemini   GeminiService
	jobIndex *JobIndex

	once    sync.Once
	initErr error
}

func NewRuntime(gemini GeminiService, jobIndex *JobIndex) *Runtime {
	return &Runtime{
		gemini:   gemini,
		jobIndex: jobIndex,
	}
}

// Initialize builds or loads the job index. Safe to call more than once;
// only the first call does work, later calls return its result.
func (r *Runtime) Initialize(ctx context.Context) error {
	r.once.Do(func() {
		log.Println("🔄 Building job index...")
		r.initErr = r.jobIndex.Load(ctx)
	})

	return r.initErr
}

// Initialized reports whether startup initialization has completed,
// regardless of how much job data was found.
func (r *Runtime) Initialized() bool {
	return r.gemini != nil && r.jobIndex.Loaded()
}

// Ready reports whether the service can serve match requests: the model
// client exists and the job index is loaded and non-empty.
func (r *Runtime) Ready() bool {
	return r.gemini != nil && r.jobIndex.Ready()
}

func (r *Runtime) JobIndex() *JobIndex {
	return r.jobIndex
}
