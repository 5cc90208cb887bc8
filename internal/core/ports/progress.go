package ports

// ScanProgress receives progress updates from a full scan.
type ScanProgress interface {
	// Advance reports that done of total files have been inspected.
	Advance(done, total int)
	// Done marks the end of the scan.
	Done()
}
