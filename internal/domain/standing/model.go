package standing

import "time"

// Standing is a read-only league table row snapshotted from upstream.
type Standing struct {
	TeamKey         string
	Name            string
	Wins            int
	Losses          int
	Ties            int
	LogoURL         string
	SourceUpdatedAt *time.Time
}
