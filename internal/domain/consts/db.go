package consts

// Tables
const (
	DBHistory = "history"
)

// History
const (
	QHistID          = "id"
	QHistRunID       = "run_id"
	QHistURL         = "url"
	QHistContentType = "content_type"
	QHistFormat      = "format"
	QHistQuality     = "quality"
	QHistStatus      = "status"
	QHistError       = "error"
	QHistStartedAt   = "started_at"
	QHistFinishedAt  = "finished_at"
)

// History statuses.
const (
	HistStarted   = "started"
	HistSucceeded = "succeeded"
	HistFailed    = "failed"
)
