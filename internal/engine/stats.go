package engine

import (
	"time"

	"github.com/dmerida/papeleo/internal/model"
)

// ExtractStats summarizes a document extraction run.
type ExtractStats struct {
	Processed   int
	Failed      int
	NeedsReview int
	Elapsed     time.Duration
}

// ClassifyStats summarizes an email classification run.
type ClassifyStats struct {
	ByCategory map[model.EmailCategory]int
	ByPriority map[model.Priority]int
	Processed  int
	Failed     int
	Elapsed    time.Duration
}
