// Package jobs provides the scheduled background work of the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 with six-field (seconds) expressions:
//
//   - MatchingJob: solves one batch of free drivers against created orders per tick.
//     Ticks with no free driver or no waiting order are silent.
//   - MovementJob: moves busy drivers one step and completes delivered orders.
//
// Usage:
//
//	manager := jobs.NewJobManager(&runMatchingHandler, &moveDriversHandler, jobs.Schedules{
//		Matching: "*/5 * * * * *",
//		Movement: "* * * * * *",
//	}, logger)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
package jobs
