package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/tasks/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(t.writer, "No tasks found. Start adding some!")
		return err
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tTEXT")

	// Print rows
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\n", task.ID, task.Text)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

// PrintError prints the error message as plain text.
func (t *TablePrinter) PrintError(msg string) error {
	if msg == "" {
		return nil
	}
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
