package availability

import "time"

// NeededMinutes rounds totalMinutes up to a whole number of grid slots:
// 25 minutes on a 30 minute grid consumes one slot, 50 minutes consumes two.
func NeededMinutes(totalMinutes, granularity int) int {
	if totalMinutes <= 0 || granularity <= 0 {
		return 0
	}
	slots := (totalMinutes + granularity - 1) / granularity
	return slots * granularity
}

// SlotGrid lists candidate start times from workStart in steps of granularity minutes.
// A candidate is kept while start+needed <= workEnd, so a slot ending exactly at workEnd is valid.
func SlotGrid(workStart, workEnd time.Time, totalMinutes, granularity int) []time.Time {
	return slotGrid(workStart, workEnd, NeededMinutes(totalMinutes, granularity), granularity)
}

// slotGrid is SlotGrid for a length already rounded with NeededMinutes.
func slotGrid(workStart, workEnd time.Time, needed, granularity int) []time.Time {
	if needed <= 0 || granularity <= 0 {
		return nil
	}

	length := time.Duration(needed) * time.Minute
	step := time.Duration(granularity) * time.Minute

	var slots []time.Time
	for t := workStart; !t.Add(length).After(workEnd); t = t.Add(step) {
		slots = append(slots, t)
	}
	return slots
}
