// Package runs keeps completed navigation runs in memory so transports can
// list and fetch them after the fact.
//
// Runs are identified by UUIDs. Lookups are case-insensitive. Nothing is
// written to disk; a background routine in the server prunes runs that have
// not been accessed within the retention window via CleanupExpired.
//
//	runMgr := runs.NewManager()
//	svc := service.NewNavigationService(runMgr, scenarioMgr)
package runs
