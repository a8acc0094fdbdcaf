package postgres

type weeklyPickInsertModel struct {
	UserID string `db:"user_id"`
	Week   int    `db:"week"`
	Picks  string `db:"picks"`
}

type weeklyPickTableModel struct {
	Picks string `db:"picks"`
}
