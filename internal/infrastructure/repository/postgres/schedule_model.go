package postgres

import "time"

type lockScheduleTableModel struct {
	Week   int       `db:"week"`
	LockAt time.Time `db:"lock_at"`
}
