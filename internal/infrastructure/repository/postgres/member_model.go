package postgres

type leagueMemberTableModel struct {
	UserID      string `db:"user_id"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
	TeamKey     string `db:"team_key"`
}

type leagueMemberInsertModel struct {
	UserID      string `db:"user_id"`
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
	TeamKey     string `db:"team_key"`
}
