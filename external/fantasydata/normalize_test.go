package fantasydata

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
)

func TestNormalize_ArrayAndIndexedObjectShapesMatch(t *testing.T) {
	t.Parallel()

	arrayTree := map[string]any{
		"league": map[string]any{
			"scoreboard": map[string]any{
				"matchups": []any{
					matchupNode("final", "Alpha Squad", "ALP", "Bravo Crew", "BRV", "Alpha Squad"),
				},
			},
		},
	}
	indexedTree := map[string]any{
		"league": map[string]any{
			"scoreboard": map[string]any{
				"matchups": map[string]any{
					"count": float64(1),
					"0":     matchupNode("final", "Alpha Squad", "ALP", "Bravo Crew", "BRV", "Alpha Squad"),
				},
			},
		},
	}

	fromArray := Normalize(arrayTree, 3)
	fromIndexed := Normalize(indexedTree, 3)

	if len(fromArray) != 1 {
		t.Fatalf("expected one matchup from array shape, got=%d", len(fromArray))
	}
	if !reflect.DeepEqual(fromArray, fromIndexed) {
		t.Fatalf("shape encodings diverged: array=%+v indexed=%+v", fromArray, fromIndexed)
	}
}

func TestNormalize_NoMatchupsNodeReturnsEmpty(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"league": map[string]any{
			"scoreboard": map[string]any{},
		},
	}

	out := Normalize(tree, 1)
	if out == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(out) != 0 {
		t.Fatalf("expected no matchups, got=%d", len(out))
	}
}

func TestNormalize_AbbreviationFallsBackToNamePrefix(t *testing.T) {
	t.Parallel()

	node := matchupNode("preevent", "Gridiron Goats", "", "Bravo Crew", "BRV", "")
	tree := map[string]any{"matchups": []any{node}}

	out := Normalize(tree, 5)
	if len(out) != 1 {
		t.Fatalf("expected one matchup, got=%d", len(out))
	}
	if out[0].HomeTeam.Abbreviation != "GRI" {
		t.Fatalf("expected fallback abbreviation GRI, got=%q", out[0].HomeTeam.Abbreviation)
	}
	if out[0].Status != matchup.StatusScheduled {
		t.Fatalf("expected scheduled status, got=%q", out[0].Status)
	}
}

func TestNormalize_TeamPartialMergeLastWins(t *testing.T) {
	t.Parallel()

	home := []any{
		map[string]any{"name": "Stale Name", "abbreviation": "OLD"},
		map[string]any{"name": "Alpha Squad", "abbreviation": "ALP"},
		map[string]any{
			"team_logos": []any{
				map[string]any{"team_logo": map[string]any{"url": "https://cdn.example/alpha.png"}},
			},
		},
		map[string]any{"team_projected_points": map[string]any{"total": "101.4"}},
		map[string]any{"team_points": map[string]any{"total": float64(98)}},
	}
	away := []any{
		map[string]any{"name": "Bravo Crew", "abbreviation": "BRV"},
		map[string]any{"team_points": map[string]any{"total": float64(88)}},
	}
	node := map[string]any{
		"matchup": []any{
			map[string]any{"status": "postevent", "week": float64(7), "winning_team_name": "Alpha Squad"},
			map[string]any{"teams": []any{home, away}},
		},
	}

	out := Normalize(map[string]any{"matchups": []any{node}}, 7)
	if len(out) != 1 {
		t.Fatalf("expected one matchup, got=%d", len(out))
	}
	got := out[0]
	if got.HomeTeam.Name != "Alpha Squad" || got.HomeTeam.Abbreviation != "ALP" {
		t.Fatalf("merge did not keep last values: %+v", got.HomeTeam)
	}
	if got.HomeTeam.LogoURL != "https://cdn.example/alpha.png" {
		t.Fatalf("expected first logo entry, got=%q", got.HomeTeam.LogoURL)
	}
	if got.HomeTeam.ProjectedPoints != 101.4 {
		t.Fatalf("expected projected=101.4, got=%v", got.HomeTeam.ProjectedPoints)
	}
	if got.HomeTeam.ActualPoints == nil || *got.HomeTeam.ActualPoints != 98 {
		t.Fatalf("expected actual=98, got=%v", got.HomeTeam.ActualPoints)
	}
	if got.Status != matchup.StatusFinal {
		t.Fatalf("expected final status, got=%q", got.Status)
	}
	if got.WinningTeamName != "Alpha Squad" {
		t.Fatalf("expected winner Alpha Squad, got=%q", got.WinningTeamName)
	}
	if got.WinnerAbbreviation() != "ALP" {
		t.Fatalf("expected winner abbreviation ALP, got=%q", got.WinnerAbbreviation())
	}
}

func TestNormalize_DeterministicAcrossRepeatedCalls(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"matchups": []any{
			matchupNode("midevent", "Zulu Nine", "ZUL", "Alpha Squad", "ALP", ""),
			matchupNode("midevent", "Bravo Crew", "BRV", "Delta Four", "DLT", ""),
		},
	}

	first := Normalize(tree, 2)
	second := Normalize(tree, 2)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated normalization diverged: first=%+v second=%+v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("expected two matchups, got=%d", len(first))
	}
	if first[0].UniqueID >= first[1].UniqueID {
		t.Fatalf("expected output ordered by unique id: %q then %q", first[0].UniqueID, first[1].UniqueID)
	}
}

func TestParseStandings_ExtractsOutcomeTotals(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"league": map[string]any{
			"standings": map[string]any{
				"teams": map[string]any{
					"count": float64(1),
					"0": []any{
						map[string]any{"team_key": "414.l.1.t.3", "name": "Alpha Squad"},
						map[string]any{
							"team_standings": map[string]any{
								"outcome_totals": map[string]any{
									"wins":   "9",
									"losses": float64(3),
									"ties":   float64(1),
								},
							},
						},
					},
				},
			},
		},
	}

	rows := parseStandings(tree)
	if len(rows) != 1 {
		t.Fatalf("expected one standing row, got=%d", len(rows))
	}
	row := rows[0]
	if row.TeamKey != "414.l.1.t.3" {
		t.Fatalf("expected team key preserved, got=%q", row.TeamKey)
	}
	if row.Wins != 9 || row.Losses != 3 || row.Ties != 1 {
		t.Fatalf("unexpected outcome totals: %+v", row)
	}
}

func matchupNode(status, homeName, homeAbbr, awayName, awayAbbr, winner string) map[string]any {
	meta := map[string]any{"status": status}
	if winner != "" {
		meta["winning_team_name"] = winner
	}
	return map[string]any{
		"matchup": []any{
			meta,
			map[string]any{
				"teams": []any{
					teamPartials(homeName, homeAbbr),
					teamPartials(awayName, awayAbbr),
				},
			},
		},
	}
}

func teamPartials(name, abbr string) []any {
	partials := []any{
		map[string]any{"name": name},
	}
	if abbr != "" {
		partials = append(partials, map[string]any{"abbreviation": abbr})
	}
	return partials
}
