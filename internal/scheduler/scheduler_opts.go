package scheduler

import "time"

type SchedulerOpt func(*Scheduler)

func WithInterval(interval time.Duration) SchedulerOpt {
	return func(s *Scheduler) {
		s.interval = interval
	}
}
