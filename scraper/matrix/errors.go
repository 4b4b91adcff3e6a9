package matrix

import "errors"

// Failure kinds surfaced by the session driver. Callers discriminate with
// errors.Is. An empty result set is not a failure; Scrape reports it as an
// empty slice.
var (
	// ErrNavigation covers failures reaching or loading the portal page.
	ErrNavigation = errors.New("matrix: navigation failed")

	// ErrOperatorTimeout means an operator step (login or search setup) was
	// not completed before its deadline.
	ErrOperatorTimeout = errors.New("matrix: operator step timed out")

	// ErrSnapshot covers failures capturing the loaded results document.
	ErrSnapshot = errors.New("matrix: page snapshot failed")
)
