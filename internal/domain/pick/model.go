package pick

const (
	OutcomeCorrect   = "CORRECT"
	OutcomeIncorrect = "INCORRECT"
	OutcomePending   = "PENDING"
	OutcomeNoPick    = "NO_PICK"
)

// Outcome is the graded result of one pick against one matchup. Derived on
// demand, never persisted.
type Outcome struct {
	GameUniqueID  string
	UserPick      string
	Status        string
	PointsAwarded int
}
