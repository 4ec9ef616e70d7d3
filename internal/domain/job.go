package domain

// Job status values. Finished is set iff Status starts with "FINISH" —
// see Job.IsTerminal.
const (
	JobStatusActive   = "ACTIVE"
	JobStatusFinished = "FINISHED"
)

// Job is a container of sites sharing configuration, with its own
// completion lifecycle: it transitions to JobStatusFinished once every
// site under it has reached a terminal status.
type Job struct {
	ID       string  `db:"id"       json:"id"`
	Conf     JSONMap `db:"conf"     json:"conf"`
	Status   string  `db:"status"   json:"status"`
	Started  string  `db:"started"  json:"started"`
	Finished *string `db:"finished" json:"finished,omitempty"`
}

// IsTerminal reports whether the job has reached a finished status.
func (j *Job) IsTerminal() bool {
	return hasFinishPrefix(j.Status)
}

func hasFinishPrefix(status string) bool {
	const prefix = "FINISH"
	return len(status) >= len(prefix) && status[:len(prefix)] == prefix
}
