package postgres

import "time"

type standingTableModel struct {
	TeamKey         string     `db:"team_key"`
	Name            string     `db:"name"`
	Wins            int        `db:"wins"`
	Losses          int        `db:"losses"`
	Ties            int        `db:"ties"`
	LogoURL         *string    `db:"logo_url"`
	SourceUpdatedAt *time.Time `db:"source_updated_at"`
}

type standingInsertModel struct {
	TeamKey         string     `db:"team_key"`
	Name            string     `db:"name"`
	Wins            int        `db:"wins"`
	Losses          int        `db:"losses"`
	Ties            int        `db:"ties"`
	LogoURL         *string    `db:"logo_url"`
	SourceUpdatedAt *time.Time `db:"source_updated_at"`
}
