// Package task runs queued generation jobs. The scheduler claims jobs
// from the durable queue one at a time, executes them and records their
// terminal status; at most one job is ever ongoing, in this process and
// across processes.
package task
