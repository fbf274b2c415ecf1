package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/nlterm/internal/domain"
)

// CommandStatistic represents usage statistics for a command
type CommandStatistic struct {
	Command string
	Count   int
}

// HistoryStatistics summarises persisted history records.
type HistoryStatistics struct {
	Total           int
	Successful      int
	NaturalLanguage int
	Untranslated    int
	CommandFreq     map[string]int
}

// AnalyzeHistory counts outcomes and command frequency. Chained commands
// are counted per step so "mkdir x && mv y x/" contributes mkdir and mv.
func AnalyzeHistory(records []domain.HistoryRecord) HistoryStatistics {
	stats := HistoryStatistics{CommandFreq: make(map[string]int)}
	for _, rec := range records {
		stats.Total++
		if rec.Success {
			stats.Successful++
		}
		if rec.NaturalLanguage {
			stats.NaturalLanguage++
			if rec.Command == "" {
				stats.Untranslated++
			}
		}
		for _, step := range strings.Split(rec.Command, domain.ChainDelimiter) {
			if fields := strings.Fields(step); len(fields) > 0 {
				stats.CommandFreq[strings.ToLower(fields[0])]++
			}
		}
	}
	return stats
}

// CalculateTopCommands returns the top N most frequently used commands
// If limit is 0 or negative, returns all commands
func CalculateTopCommands(commandFrequency map[string]int, limit int) []CommandStatistic {
	stats := convertFrequencyMapToStatistics(commandFrequency)
	sortStatisticsByFrequency(stats)

	if shouldLimitResults(limit, len(stats)) {
		return stats[:limit]
	}
	return stats
}

// convertFrequencyMapToStatistics converts a map to a slice of CommandStatistic
func convertFrequencyMapToStatistics(frequency map[string]int) []CommandStatistic {
	stats := make([]CommandStatistic, 0, len(frequency))
	for cmd, count := range frequency {
		stats = append(stats, CommandStatistic{
			Command: cmd,
			Count:   count,
		})
	}
	return stats
}

// sortStatisticsByFrequency sorts statistics by count (descending) then by command name (ascending)
func sortStatisticsByFrequency(stats []CommandStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Command < stats[j].Command
		}
		return stats[i].Count > stats[j].Count
	})
}

// shouldLimitResults checks if we should limit the results based on the limit and actual length
func shouldLimitResults(limit int, actualLength int) bool {
	return limit > 0 && actualLength > limit
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, executedCount int) float64 {
	if executedCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(executedCount) * 100.0
}

// DeriveUndoHints generates undo hints for destructive built-ins found in
// the history. Returns a sorted list of unique hints.
func DeriveUndoHints(records []domain.HistoryRecord) []string {
	hintMap := make(map[string]string)

	for _, record := range records {
		for _, step := range strings.Split(strings.ToLower(record.Command), domain.ChainDelimiter) {
			addHintIfApplicable(hintMap, strings.TrimSpace(step))
		}
	}

	return convertHintMapToSortedList(hintMap)
}

// addHintIfApplicable adds a hint to the map if the command matches known patterns
func addHintIfApplicable(hintMap map[string]string, command string) {
	hints := map[string]struct {
		prefix string
		hint   string
	}{
		"rm": {
			prefix: "rm ",
			hint:   "rm deletes immediately; restore removed files from backups or version control.",
		},
		"mv": {
			prefix: "mv ",
			hint:   "Undo a move by running mv again with source and destination swapped.",
		},
		"cp": {
			prefix: "cp ",
			hint:   "cp overwrites existing targets; check the destination before repeating.",
		},
		"rmdir": {
			prefix: "rmdir ",
			hint:   "Recreate removed directories with mkdir.",
		},
	}

	for key, config := range hints {
		if strings.HasPrefix(command, config.prefix) {
			hintMap[key] = config.hint
		}
	}
}

// convertHintMapToSortedList converts a hint map to a sorted slice
func convertHintMapToSortedList(hintMap map[string]string) []string {
	hints := make([]string, 0, len(hintMap))
	for _, hint := range hintMap {
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	return hints
}
