package structs

// JobLogModel is the properties payload of a worker activity_log row.
type JobLogModel struct {
	Type        string `json:"type"`
	TaskID      uint   `json:"task_id"`
	Queue       string `json:"queue"`
	Username    string `json:"username,omitempty"`
	Result      bool   `json:"result"`
	ResultCount int    `json:"result_count"`
	Message     string `json:"message"`
}
