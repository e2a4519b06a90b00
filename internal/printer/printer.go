package printer

import "github.com/slok/tasks/internal/model"

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintTasks(tasks []model.Task) error
	PrintMessage(msg string) error
	// PrintError prints a failure message meant for the user.
	PrintError(msg string) error
}
