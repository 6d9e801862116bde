package usecase

import (
	"sort"
	"time"

	"todoist-scheduler/internal/schedule"
)

// findGaps returns the free windows of today between start and the sleep
// boundary, in order. Contiguous occupied slots are coalesced into single
// busy runs first; treating each slot as an isolated point would shatter
// one busy block into dozens of false one-interval "gaps".
func (p *pass) findGaps(start time.Time) []schedule.Gap {
	endOfDay := p.uc.grid.Combine(p.today, p.uc.cfg.SleepHour, p.uc.cfg.SleepMinute)

	var todayOccupied []time.Time
	for slot := range p.occupied {
		if p.uc.grid.SameDay(slot, p.today) && !slot.Before(start) {
			todayOccupied = append(todayOccupied, slot)
		}
	}
	sort.Slice(todayOccupied, func(i, j int) bool {
		return todayOccupied[i].Before(todayOccupied[j])
	})

	if len(todayOccupied) == 0 {
		return []schedule.Gap{{Start: start, End: endOfDay}}
	}

	var gaps []schedule.Gap
	if todayOccupied[0].After(start) {
		gaps = append(gaps, schedule.Gap{Start: start, End: todayOccupied[0]})
	}

	for i := 0; i < len(todayOccupied)-1; i++ {
		runEnd := p.endOfRun(todayOccupied[i])
		next := todayOccupied[i+1]
		if next.After(runEnd.Add(p.interval())) {
			gaps = append(gaps, schedule.Gap{Start: runEnd.Add(p.interval()), End: next})
		}
	}

	lastEnd := p.endOfRun(todayOccupied[len(todayOccupied)-1]).Add(p.interval())
	if lastEnd.Before(endOfDay) {
		gaps = append(gaps, schedule.Gap{Start: lastEnd, End: endOfDay})
	}

	return gaps
}

// endOfRun walks forward from an occupied slot to the last slot of its
// contiguous occupied run.
func (p *pass) endOfRun(slot time.Time) time.Time {
	for {
		next := slot.Add(p.interval())
		if _, ok := p.occupied[next]; !ok {
			return slot
		}
		slot = next
	}
}

// findGapForTask returns the start of the first gap that can hold
// numBlocks slots. A gap long enough on paper can still hide an illegal
// sub-region (a recurring block, the sleep boundary), in which case the
// whole gap is rejected rather than truncated.
func (p *pass) findGapForTask(gaps []schedule.Gap, numBlocks int) (time.Time, bool) {
	required := numBlocks * p.uc.cfg.IntervalMinutes

	for _, gap := range gaps {
		if gap.Minutes() < required {
			continue
		}

		available := true
		for j := 0; j < numBlocks; j++ {
			slot := gap.Start.Add(time.Duration(j) * p.interval())
			if _, recurring := p.recurring[slot]; recurring || p.isTimeBlocked(slot) {
				available = false
				break
			}
		}
		if available {
			return gap.Start, true
		}
	}

	return time.Time{}, false
}

// consumeGap shrinks the gap a placement just used so the next candidate
// cannot be handed the same window. The remainder survives if at least
// one slot is left.
func consumeGap(gaps []schedule.Gap, placed time.Time, numBlocks, intervalMinutes int) []schedule.Gap {
	used := time.Duration(numBlocks*intervalMinutes) * time.Minute

	out := gaps[:0]
	for _, gap := range gaps {
		if !gap.Start.Equal(placed) {
			out = append(out, gap)
			continue
		}
		remainder := schedule.Gap{Start: gap.Start.Add(used), End: gap.End}
		if remainder.Minutes() >= intervalMinutes {
			out = append(out, remainder)
		}
	}
	return out
}
