// Package batch translates many validation failures concurrently.
//
// A Pipeline fans jobs out over an ants worker pool. Jobs are grouped by
// destination session and each group runs on one worker, so the errors a
// session receives keep the order the jobs were submitted in.
package batch
