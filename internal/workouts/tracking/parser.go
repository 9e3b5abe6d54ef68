package tracking

import (
	"regexp"
	"strconv"
	"strings"
)

// Program definitions carry sets and rest as free text ("4 x 8-10",
// "1 min 30 sec"). Parsing is forgiving: anything unreadable falls back
// to defaults instead of failing the workout.
const (
	defaultSets        = 3
	defaultRepsLow     = 8
	defaultRepsHigh    = 12
	defaultRestSeconds = 90
)

var (
	setsRepsRegex = regexp.MustCompile(`(?i)(\d+)\s*x\s*(\d+)(?:\s*-\s*(\d+))?`)
	minutesRegex  = regexp.MustCompile(`(\d+)\s*m(?:in(?:ute)?s?)?`)
	secondsRegex  = regexp.MustCompile(`(\d+)\s*s(?:ec(?:ond)?s?)?`)
	bareNumRegex  = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// ParseExerciseSpec reads the set count and target rep range out of a
// textual exercise spec like "4 x 8-10", "3x12" or "5 X 5". A single rep
// value means low == high. Malformed specs yield 3 x 8-12.
func ParseExerciseSpec(spec string) (sets, repsLow, repsHigh int) {
	m := setsRepsRegex.FindStringSubmatch(spec)
	if m == nil {
		return defaultSets, defaultRepsLow, defaultRepsHigh
	}

	sets, _ = strconv.Atoi(m[1])
	repsLow, _ = strconv.Atoi(m[2])
	repsHigh = repsLow
	if m[3] != "" {
		repsHigh, _ = strconv.Atoi(m[3])
	}

	if sets < 1 || repsLow < 1 || repsHigh < repsLow {
		return defaultSets, defaultRepsLow, defaultRepsHigh
	}

	return sets, repsLow, repsHigh
}

// ParseRest converts a textual rest duration to seconds. Minute and second
// units combine ("1 min 30 sec" is 90), a bare number is taken as seconds,
// and the "no rest" sentinel maps to 0. Unparseable input defaults to 90.
func ParseRest(rest string) int {
	trimmed := strings.ToLower(strings.TrimSpace(rest))
	if trimmed == "" {
		return defaultRestSeconds
	}
	if strings.Contains(trimmed, "no rest") {
		return 0
	}
	if m := bareNumRegex.FindStringSubmatch(trimmed); m != nil {
		seconds, _ := strconv.Atoi(m[1])
		return seconds
	}

	total := 0
	matched := false
	if m := minutesRegex.FindStringSubmatch(trimmed); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		total += minutes * 60
		matched = true
	}
	if m := secondsRegex.FindStringSubmatch(trimmed); m != nil {
		seconds, _ := strconv.Atoi(m[1])
		total += seconds
		matched = true
	}
	if !matched {
		return defaultRestSeconds
	}
	return total
}
