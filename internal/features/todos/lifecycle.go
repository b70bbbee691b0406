package todos

import "time"

// Recompute applies the past-due rule to t as seen at now. It returns the
// status t should have and whether that differs from its current status.
//
// Only NOT_DONE todos whose due time is strictly before now move to PAST_DUE.
// DONE and PAST_DUE todos are never changed.
func Recompute(t Todo, now time.Time) (Status, bool) {
	if t.Status == StatusNotDone && t.DueDatetime.Before(now) {
		return StatusPastDue, true
	}
	return t.Status, false
}

// recomputeAll applies Recompute to every todo in place and returns copies of
// the ones that changed, ready for a batch write.
func recomputeAll(list []Todo, now time.Time) []Todo {
	var changed []Todo
	for i := range list {
		status, ok := Recompute(list[i], now)
		if !ok {
			continue
		}
		list[i].Status = status
		changed = append(changed, list[i])
	}
	return changed
}

func markDone(t *Todo, now time.Time) {
	t.Status = StatusDone
	t.DoneDatetime = &now
}

func markNotDone(t *Todo) {
	t.Status = StatusNotDone
	t.DoneDatetime = nil
}
