// Package parallel runs independent jobs with bounded concurrency.
//
// WorkerPool is used to fan a notification out to several backends at once,
// so a slow desktop or hook command does not hold up the others.
package parallel
