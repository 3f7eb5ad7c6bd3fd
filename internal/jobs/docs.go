// Package jobs provides scheduled background tasks for the orchestrator.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are started and
// stopped together through JobManager:
//
//	job := jobs.NewStalePendingOrdersJob(handler, "0 */5 * * * *", 15*time.Minute, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StalePendingOrdersJob lists orders left Pending longer than the configured
// age, which happens when the process dies between the two saves of order
// creation. Each one is logged at Warn. The job never changes an order.
package jobs
