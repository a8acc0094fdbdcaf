package matchup

import (
	"math"
	"strings"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusFinal      = "FINAL"
)

// Team is one side of a head-to-head matchup.
type Team struct {
	Name            string
	Abbreviation    string
	LogoURL         string
	ProjectedPoints float64
	ActualPoints    *float64
}

// Matchup represents one week's head-to-head pairing, immutable once built
// from an upstream response.
type Matchup struct {
	UniqueID        string
	Week            int
	HomeTeam        Team
	AwayTeam        Team
	WinningTeamName string
	Status          string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	switch status {
	case "", "PREEVENT", "PREGAME", StatusScheduled:
		return StatusScheduled
	case "MIDEVENT", "LIVE", "IN_PLAY", StatusInProgress:
		return StatusInProgress
	case "POSTEVENT", "COMPLETE", "CLOSED", StatusFinal:
		return StatusFinal
	default:
		return status
	}
}

func IsFinalStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinal
}

// HasWinner reports whether the matchup has concluded with a recorded winner.
func (m Matchup) HasWinner() bool {
	return strings.TrimSpace(m.WinningTeamName) != ""
}

// WinnerAbbreviation resolves the winning team's abbreviation by matching
// WinningTeamName against the two participant names. When the value matches
// neither name it is returned as-is and treated as an abbreviation already;
// upstream occasionally sends the abbreviation in the name slot and that
// tolerance must survive.
func (m Matchup) WinnerAbbreviation() string {
	winner := strings.TrimSpace(m.WinningTeamName)
	if winner == "" {
		return ""
	}
	if winner == m.HomeTeam.Name {
		return m.HomeTeam.Abbreviation
	}
	if winner == m.AwayTeam.Name {
		return m.AwayTeam.Abbreviation
	}
	return winner
}

// ScoreMargin returns the absolute final-score margin. The second return is
// false until both sides have an actual point value.
func (m Matchup) ScoreMargin() (float64, bool) {
	if m.HomeTeam.ActualPoints == nil || m.AwayTeam.ActualPoints == nil {
		return 0, false
	}
	return math.Abs(*m.HomeTeam.ActualPoints - *m.AwayTeam.ActualPoints), true
}
