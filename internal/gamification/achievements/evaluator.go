package achievements

// Unlockable returns the catalog entries the user newly qualifies for: the
// metric type matches, the target is reached, and the entry is not among
// the already unlocked IDs. All qualifying entries are returned at once,
// in catalog order, so a big metric jump unlocks every passed target in a
// single evaluation. Already unlocked IDs are never returned again, which
// makes repeated evaluations with the same inputs harmless.
func Unlockable(catalog []Achievement, unlocked []string, metricType string, currentValue int) []Achievement {
	unlockedSet := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		unlockedSet[id] = struct{}{}
	}

	var newly []Achievement
	for _, a := range catalog {
		if a.MetricType != metricType {
			continue
		}
		if a.Target > currentValue {
			continue
		}
		if _, ok := unlockedSet[a.ID]; ok {
			continue
		}
		newly = append(newly, a)
	}
	return newly
}
