// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds field enabled,
// so schedules accept both six-field expressions and descriptors such as
// "@every 1m".
//
// # Available Jobs
//
// GuestOrderExpiryJob sweeps guest orders whose tracking window has passed
// and moves them to Expired in batches.
//
// # Usage
//
//	expiry := jobs.NewGuestOrderExpiryJob(expireHandler, "@every 1m", 100, logger)
//
//	jobManager := jobs.NewJobManager().Add("guest order expiry", expiry)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Orders a sweep
// cannot lock are left for the next one.
package jobs
