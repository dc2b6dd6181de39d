package simulation

// WeekSnapshot is one row of a projection: the bucket occupancies at the start
// of a week and the derived compliance percentages. Rows are never mutated
// after Simulate returns.
type WeekSnapshot struct {
	Week              int     `json:"week"`
	Bucket1           int     `json:"bucket_1"`
	Bucket2           int     `json:"bucket_2"`
	Bucket3           int     `json:"bucket_3"`
	TotalOpen         int     `json:"total_open"`
	PctMeetingTarget1 float64 `json:"pct_meeting_target_1"`
	PctMeetingTarget2 float64 `json:"pct_meeting_target_2"`
}

func snapshot(week, b1, b2, b3 int) WeekSnapshot {
	total := b1 + b2 + b3
	// An empty backlog is vacuously compliant with every target.
	pct1, pct2 := 100.0, 100.0
	if total > 0 {
		pct1 = float64(b1) / float64(total) * 100
		pct2 = float64(b1+b2) / float64(total) * 100
	}
	return WeekSnapshot{
		Week:              week,
		Bucket1:           b1,
		Bucket2:           b2,
		Bucket3:           b3,
		TotalOpen:         total,
		PctMeetingTarget1: pct1,
		PctMeetingTarget2: pct2,
	}
}

// Simulate advances the three-bucket age-cohort population one week at a time
// and returns the full trajectory, cfg.Weeks+1 rows long. It is a pure
// function of its input: deterministic, no shared state, no side effects.
//
// Each week, after the snapshot for the current week is recorded:
//  1. Aging moves a fixed fraction of bucket 1 into bucket 2 and of bucket 2
//     into bucket 3. A bucket spanning D days turns over in D/7 weeks, so the
//     weekly fraction is 7/D, clamped to 1 for spans narrower than one week.
//     Moved counts are integer-truncated.
//  2. Intake adds WeeklyOpened items to bucket 1.
//  3. Closure removes min(WeeklyClosed, total) items, allocated per Policy.
//  4. Every bucket is clamped at zero. Mixed's proportional rounding can push
//     a bucket below zero; the clamp is required there, not decorative.
func Simulate(cfg ScenarioConfig) ([]WeekSnapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Normalized()

	agingFrac1 := min(1, 7/float64(c.Target1Days))
	agingFrac2 := min(1, 7/float64(c.Target2Days-c.Target1Days))

	b1, b2, b3 := c.Bucket1Init, c.Bucket2Init, c.Bucket3Init

	rows := make([]WeekSnapshot, 0, c.Weeks+1)
	for week := 0; week <= c.Weeks; week++ {
		rows = append(rows, snapshot(week, b1, b2, b3))
		if week == c.Weeks {
			break
		}

		// 1. Aging
		agedPastT1 := int(float64(b1) * agingFrac1)
		agedPastT2 := int(float64(b2) * agingFrac2)
		b1 -= agedPastT1
		b2 += agedPastT1 - agedPastT2
		b3 += agedPastT2

		// 2. Intake: new complaints are always youngest.
		b1 += c.WeeklyOpened

		// 3. Closure
		toClose := min(c.WeeklyClosed, b1+b2+b3)
		switch c.Policy {
		case OldestFirst:
			fromB3 := min(toClose, b3)
			b3 -= fromB3
			toClose -= fromB3
			fromB2 := min(toClose, b2)
			b2 -= fromB2
			toClose -= fromB2
			b1 -= toClose
		case NewestFirst:
			fromB1 := min(toClose, b1)
			b1 -= fromB1
			toClose -= fromB1
			fromB2 := min(toClose, b2)
			b2 -= fromB2
			toClose -= fromB2
			b3 -= toClose
		case Mixed:
			total := b1 + b2 + b3
			if total > 0 {
				close1 := toClose * b1 / total
				close2 := toClose * b2 / total
				// Remainder lands on bucket 3 so the three allocations sum
				// to toClose. The exact split under extreme ratios is an
				// artifact of integer rounding, not a contract.
				close3 := toClose - close1 - close2
				b1 -= min(close1, b1)
				b2 -= min(close2, b2)
				b3 -= min(close3, b3)
			}
		}

		// 4. Clamp
		b1 = max(b1, 0)
		b2 = max(b2, 0)
		b3 = max(b3, 0)
	}

	return rows, nil
}
