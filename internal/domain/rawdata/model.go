package rawdata

import "time"

type Payload struct {
	Source          string
	EntityType      string
	EntityKey       string
	Week            int
	PayloadJSON     string
	PayloadHash     string
	SourceFetchedAt *time.Time
}
