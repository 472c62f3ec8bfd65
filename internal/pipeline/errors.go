package pipeline

import "errors"

// Sentinel errors forming the §7 error taxonomy. Only ErrInputUnreadable
// and disk-write errors are fatal to a job; every other sentinel is
// recorded on a row or logged and the pipeline continues.
var (
	// ErrInputUnreadable means the uploaded file cannot be decoded or is
	// empty. Fatal: the job does not start.
	ErrInputUnreadable = errors.New("pipeline: input file unreadable")

	// ErrInferenceFailure means the remote schema-inference call failed.
	// Recovered locally via the heuristic fallback; non-fatal.
	ErrInferenceFailure = errors.New("pipeline: schema inference call failed")

	// ErrIneligible means a row's city falls outside the jurisdiction
	// whitelist. Recorded on the row; no external call is made.
	ErrIneligible = errors.New("pipeline: row ineligible for external lookup")

	// ErrNoResults means the external site returned nothing matching this
	// query. Recorded on the row; non-fatal.
	ErrNoResults = errors.New("pipeline: no results from external site")

	// ErrScraperError means navigation, parsing, or anti-bot interference
	// broke a scraper query. Non-fatal. The assessor lookup retries once
	// inside the same browser context; a people-search query is not
	// retried, and no retry opens a fresh context.
	ErrScraperError = errors.New("pipeline: scraper error")

	// ErrMergeConflict means a scraped record could not be attached to any
	// row (no index, no fallback-strategy match). Recorded and written
	// with an empty phone/owner value.
	ErrMergeConflict = errors.New("pipeline: scraped record could not be merged")
)
