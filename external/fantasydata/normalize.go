package fantasydata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/matchup"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
)

const maxTreeDepth = 10

// Normalize flattens one week's scoreboard tree into matchup records. The
// provider is inconsistent about list encoding: depending on deployment a
// sibling list arrives either as a true JSON array or as an object keyed
// "0", "1", ... with a "count" sibling. Both shapes must produce identical
// output. A tree with no matchups node at all is the pre-season shape and
// yields an empty slice, not an error.
func Normalize(tree map[string]any, week int) []matchup.Matchup {
	node := findKeyedNode(tree, "matchups", 0)
	if node == nil {
		return []matchup.Matchup{}
	}

	out := make([]matchup.Matchup, 0, 16)
	for _, item := range listItems(node) {
		parsed, ok := parseMatchupNode(item, week)
		if !ok {
			continue
		}
		out = append(out, parsed)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UniqueID < out[j].UniqueID
	})
	return out
}

// listItems iterates a list-like node regardless of encoding. Objects are
// treated as indexed lists when consecutive integer keys starting at "0"
// resolve; the "count" sibling is skipped.
func listItems(node any) []any {
	switch typed := node.(type) {
	case []any:
		return typed
	case map[string]any:
		items := make([]any, 0, len(typed))
		for idx := 0; ; idx++ {
			value, ok := typed[strconv.Itoa(idx)]
			if !ok {
				break
			}
			items = append(items, value)
		}
		return items
	default:
		return nil
	}
}

// findKeyedNode walks the tree breadth-first-ish for the first node stored
// under the given key, at any depth.
func findKeyedNode(node any, key string, depth int) any {
	if depth > maxTreeDepth {
		return nil
	}
	switch typed := node.(type) {
	case map[string]any:
		if value, ok := typed[key]; ok && value != nil {
			return value
		}
		for _, child := range typed {
			if found := findKeyedNode(child, key, depth+1); found != nil {
				return found
			}
		}
	case []any:
		for _, child := range typed {
			if found := findKeyedNode(child, key, depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

func parseMatchupNode(node any, week int) (matchup.Matchup, bool) {
	inner := node
	if wrapped, ok := node.(map[string]any); ok {
		if value, exists := wrapped["matchup"]; exists && value != nil {
			inner = value
		}
	}

	// Siblings carry the metadata and the participants in no fixed slot:
	// scan for whichever element has a "status" field and whichever has a
	// "teams" field.
	var meta map[string]any
	var teamsNode any
	siblings := listItems(inner)
	if len(siblings) == 0 {
		if obj, ok := inner.(map[string]any); ok {
			siblings = []any{obj}
		}
	}
	for _, sibling := range siblings {
		obj, ok := sibling.(map[string]any)
		if !ok {
			continue
		}
		if meta == nil {
			if _, exists := obj["status"]; exists {
				meta = obj
			}
		}
		if teamsNode == nil {
			if value, exists := obj["teams"]; exists && value != nil {
				teamsNode = value
			}
		}
	}

	participants := listItems(teamsNode)
	if len(participants) < 2 {
		return matchup.Matchup{}, false
	}

	home := assembleTeam(participants[0])
	away := assembleTeam(participants[1])
	if home.Name == "" || away.Name == "" {
		return matchup.Matchup{}, false
	}

	resolvedWeek := week
	status := matchup.StatusScheduled
	winner := ""
	if meta != nil {
		if metaWeek := getInt(meta, "week"); metaWeek > 0 {
			resolvedWeek = metaWeek
		}
		status = matchup.NormalizeStatus(getString(meta, "status"))
		winner = firstNonEmpty(getString(meta, "winning_team_name"), getString(meta, "winner"))
	}

	return matchup.Matchup{
		UniqueID:        buildUniqueID(resolvedWeek, home, away),
		Week:            resolvedWeek,
		HomeTeam:        home,
		AwayTeam:        away,
		WinningTeamName: winner,
		Status:          status,
	}, true
}

// assembleTeam shallow-merges the participant's scattered partial objects
// into one record. Merge order is last-key-wins on collision; the upstream
// ordering already encodes its own field priority, so the order is load
// bearing and must not be "fixed".
func assembleTeam(node any) matchup.Team {
	merged := map[string]any{}
	mergePartials(merged, node, 0)

	name := getString(merged, "name")
	abbr := getString(merged, "abbreviation")
	if abbr == "" && name != "" {
		runes := []rune(name)
		if len(runes) > 3 {
			runes = runes[:3]
		}
		abbr = strings.ToUpper(string(runes))
	}

	team := matchup.Team{
		Name:            name,
		Abbreviation:    abbr,
		LogoURL:         firstLogoURL(merged["team_logos"]),
		ProjectedPoints: pointsTotal(merged["team_projected_points"]),
	}
	if actual, ok := pointsTotalOK(merged["team_points"]); ok {
		team.ActualPoints = &actual
	}
	return team
}

func mergePartials(dst map[string]any, node any, depth int) {
	if depth > maxTreeDepth {
		return
	}
	switch typed := node.(type) {
	case map[string]any:
		if wrapped, ok := typed["team"]; ok && wrapped != nil && len(typed) <= 2 {
			mergePartials(dst, wrapped, depth+1)
			return
		}
		if items := listItems(typed); len(items) > 0 {
			for _, item := range items {
				mergePartials(dst, item, depth+1)
			}
			return
		}
		for key, value := range typed {
			if key == "count" {
				continue
			}
			dst[key] = value
		}
	case []any:
		for _, item := range typed {
			mergePartials(dst, item, depth+1)
		}
	}
}

func firstLogoURL(node any) string {
	for _, item := range listItems(node) {
		obj, ok := item.(map[string]any)
		if !ok {
			if text, isText := item.(string); isText {
				return strings.TrimSpace(text)
			}
			continue
		}
		if inner, exists := obj["team_logo"]; exists {
			if innerObj, isObj := inner.(map[string]any); isObj {
				if value := getString(innerObj, "url"); value != "" {
					return value
				}
			}
		}
		if value := getString(obj, "url"); value != "" {
			return value
		}
	}
	return ""
}

func pointsTotal(node any) float64 {
	value, _ := pointsTotalOK(node)
	return value
}

func pointsTotalOK(node any) (float64, bool) {
	switch typed := node.(type) {
	case nil:
		return 0, false
	case float64:
		return typed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case map[string]any:
		for _, key := range []string{"total", "value", "points"} {
			if inner, ok := typed[key]; ok {
				return pointsTotalOK(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func buildUniqueID(week int, home, away matchup.Team) string {
	return fmt.Sprintf("wk%02d:%s-%s", week, teamSlug(home), teamSlug(away))
}

func teamSlug(team matchup.Team) string {
	source := firstNonEmpty(team.Abbreviation, team.Name)
	slug := strings.ToLower(strings.TrimSpace(source))
	return strings.ReplaceAll(slug, " ", "_")
}

func parseStandings(tree map[string]any) []standing.Standing {
	node := findKeyedNode(tree, "standings", 0)
	if node == nil {
		return []standing.Standing{}
	}
	teamsNode := findKeyedNode(node, "teams", 0)
	if teamsNode == nil {
		teamsNode = node
	}

	out := make([]standing.Standing, 0, 16)
	for _, item := range listItems(teamsNode) {
		merged := map[string]any{}
		mergePartials(merged, item, 0)

		name := getString(merged, "name")
		if name == "" {
			continue
		}
		outcomes := relationMap(merged["team_standings"])
		if outcomes != nil {
			outcomes = relationMap(outcomes["outcome_totals"])
		}

		out = append(out, standing.Standing{
			TeamKey: getString(merged, "team_key"),
			Name:    name,
			Wins:    getInt(outcomes, "wins"),
			Losses:  getInt(outcomes, "losses"),
			Ties:    getInt(outcomes, "ties"),
			LogoURL: firstLogoURL(merged["team_logos"]),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].TeamKey < out[j].TeamKey
	})
	return out
}

func relationMap(raw any) map[string]any {
	if raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return obj
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0
	}
	switch typed := raw.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
