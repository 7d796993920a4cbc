package job

import "encoding/json"

// SendArgs are the River job arguments of a deferred message.
// MessageID alone decides uniqueness when UniqueFor is used.
type SendArgs struct {
	MessageID string          `json:"message_id" river:"unique"`
	Message   json.RawMessage `json:"message"`
}

// Kind implements river.JobArgs.
func (SendArgs) Kind() string {
	return "mailtemplated:send"
}

// periodicArgs are inserted by River on a cron schedule.
type periodicArgs struct {
	Name string `json:"name"`
}

func (periodicArgs) Kind() string {
	return "mailtemplated:periodic"
}
