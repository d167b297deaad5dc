package task

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	if title == "" {
		return nil
	}
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(task *Task) {
		task.IsCompleted = completed
	}
}

func WithTimeTracked(seconds int) TaskOption {
	if seconds < 0 {
		return nil
	}
	return func(task *Task) {
		task.TimeTrackedSeconds = seconds
	}
}
