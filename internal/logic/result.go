package logic

// Result is the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path, empty for inspect and dry runs
	Output string

	// Input and output sizes in bytes
	InputSize  int64
	OutputSize int64

	// Report replaces the default success line when set
	Report string

	// Any error that occurred during processing
	Error error
}
