package workspace

// TaskStatus is the lifecycle state of a server-side summarization job.
type TaskStatus string

const (
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskError      TaskStatus = "error"
	TaskCancelled  TaskStatus = "cancelled"
)

// Terminal reports whether no further automatic transition occurs.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskCompleted, TaskError, TaskCancelled:
		return true
	}
	return false
}

// SummarizeTask is the server's view of a summarization job, polled by id
// until it reaches a terminal status.
type SummarizeTask struct {
	TaskID       string     `json:"task_id"`
	Status       TaskStatus `json:"status"`
	Detail       string     `json:"detail,omitempty"`
	ResultURL    string     `json:"result_url,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// SummarizeScope is the project or folder a summarization covers.
// FolderID nil means the whole project.
type SummarizeScope struct {
	ProjectID string  `json:"project_id"`
	FolderID  *string `json:"folder_id,omitempty"`
}

// SummarizeResult is emitted once a tracked task reaches Completed.
type SummarizeResult struct {
	TaskID    string `json:"task_id"`
	ResultURL string `json:"result_url"`
}
