package services

import "errors"

var (
	// ErrNotInitialized is returned when matching is requested before the
	// startup initialization has completed.
	ErrNotInitialized = errors.New("service is still initializing")

	// ErrNoJobs is returned when the job index finished loading but holds
	// no postings.
	ErrNoJobs = errors.New("no jobs or embeddings available")

	// ErrGeneration wraps failures of the generative text API.
	ErrGeneration = errors.New("text generation failed")

	// ErrNoSkillReflection is returned when question generation is
	// requested for a user without a stored skill reflection.
	ErrNoSkillReflection = errors.New("no skill reflection found for this user_test_id")

	// ErrCacheCorrupt marks an unreadable embedding cache artifact. It is
	// always recovered by recomputation and never reaches a caller.
	ErrCacheCorrupt = errors.New("embedding cache is corrupt")
)
