package enum

type JobStatus string

const (
	JobStatusOpen     JobStatus = "open"
	JobStatusPending  JobStatus = "pending"
	JobStatusVerified JobStatus = "verified"
)
