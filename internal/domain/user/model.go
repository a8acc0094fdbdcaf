package user

// Principal identifies an authenticated caller.
type Principal struct {
	UserID string
	Email  string
}

// Member is one league participant. TeamKey links the member to an upstream
// standings row when known.
type Member struct {
	UserID      string
	Username    string
	DisplayName string
	TeamKey     string
}

// Label is the member's leaderboard display string.
func (m Member) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Username
}
