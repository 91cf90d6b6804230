package scheduler

import (
	"math/rand"
	"time"

	"github.com/calebhart/seedpost/internal/domain"
)

// Slot is one scheduled assignment a post will be generated to fill.
type Slot struct {
	Index         int
	Subreddit     string
	TargetQuery   string
	PostType      domain.PostType
	ScheduledTime time.Time
}

// postingHours bounds time-of-day so nothing lands at 4am; real posters
// cluster between late morning and evening.
var postingHours = []int{9, 11, 13, 15, 17, 19, 21}

// WeekRange returns the date range for a given week number. Week N is the
// N-th ISO week of the given year, so the same week number always maps to
// the same range across successive calls.
func WeekRange(year, weekNumber int) (start, end time.Time) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	firstMonday := jan4.AddDate(0, 0, -offset)
	start = firstMonday.AddDate(0, 0, (weekNumber-1)*7)
	end = start.AddDate(0, 0, 7)
	return start, end
}

// BuildSlots turns the configuration into posts_per_week slots. Subreddits
// and queries are cycled round-robin independently so coverage is maximized
// before any repeats; timestamps are spread across the week's days with
// jittered hours and minute-unique times. Returns the slots and whether any
// (subreddit, query) combination had to repeat.
func BuildSlots(cfg *domain.GenerationConfig, weekStart time.Time, rng *rand.Rand) ([]Slot, bool) {
	n := cfg.PostsPerWeek
	slots := make([]Slot, 0, n)
	usedMinutes := make(map[int64]bool, n)
	combos := make(map[string]bool, n)
	repeated := false

	for i := 0; i < n; i++ {
		sub := cfg.Subreddits[i%len(cfg.Subreddits)]
		query := cfg.TargetQueries[i%len(cfg.TargetQueries)]

		key := sub + "\x00" + query
		if combos[key] {
			repeated = true
		}
		combos[key] = true

		slots = append(slots, Slot{
			Index:         i,
			Subreddit:     sub,
			TargetQuery:   query,
			PostType:      domain.AllPostTypes[i%len(domain.AllPostTypes)],
			ScheduledTime: slotTime(weekStart, i, n, rng, usedMinutes),
		})
	}

	return slots, repeated
}

// slotTime spreads slot i of n across the week and guarantees a
// minute-unique timestamp.
func slotTime(weekStart time.Time, i, n int, rng *rand.Rand, usedMinutes map[int64]bool) time.Time {
	day := (i * 7) / n
	if day > 6 {
		day = 6
	}

	for attempt := 0; ; attempt++ {
		hour := postingHours[rng.Intn(len(postingHours))]
		minute := rng.Intn(60)
		t := weekStart.AddDate(0, 0, day).Add(
			time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

		key := t.Unix() / 60
		if !usedMinutes[key] {
			usedMinutes[key] = true
			return t
		}
		// Collisions get rare fast; walk forward deterministically if the
		// rng keeps landing on taken minutes.
		if attempt > 120 {
			for {
				t = t.Add(time.Minute)
				key = t.Unix() / 60
				if !usedMinutes[key] {
					usedMinutes[key] = true
					return t
				}
			}
		}
	}
}
