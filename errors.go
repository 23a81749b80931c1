package main

import "fmt"

// ValidationError reports a chart input that violates the shape rules for
// its chart type. Dataset is the index of the offending dataset, or -1 when
// the problem is not tied to a single dataset.
type ValidationError struct {
	Dataset int
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Dataset >= 0 {
		return fmt.Sprintf("dataset %d: %s", e.Dataset, e.Reason)
	}
	return e.Reason
}

// OutputPathError reports a download target whose directory is missing or
// unusable. It is raised before any network call is made.
type OutputPathError struct {
	Dir    string
	Reason string
}

func (e *OutputPathError) Error() string {
	return fmt.Sprintf("output directory %s: %s", e.Dir, e.Reason)
}

// RemoteFetchError reports a failed retrieval of the rendered image, either
// a transport failure (Err set) or a non-2xx response (StatusCode set).
type RemoteFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RemoteFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch chart image: %v", e.Err)
	}
	return fmt.Sprintf("fetch chart image: HTTP %d", e.StatusCode)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}
