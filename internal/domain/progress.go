package domain

// ProgressFunc reports warm-up progress.
// Called once per fetched page: (1, 12), (2, 12), ...
type ProgressFunc func(loaded, total int)

// WarmResult summarizes a warm-up run.
type WarmResult struct {
	Category string // Listing the run walked
	Pages    int    // Pages fetched successfully
	Rows     int    // Rows persisted across all pages
}
