package printer

import (
	"encoding/json"
	"io"

	"github.com/slok/tasks/internal/model"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type taskItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type errorOutput struct {
	Error string `json:"error"`
}

// PrintTasks prints tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	items := make([]taskItem, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{ID: t.ID, Text: t.Text}
	}

	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

// PrintError prints an error message in JSON format.
func (j *JSONPrinter) PrintError(msg string) error {
	if msg == "" {
		return nil
	}
	return j.encode(errorOutput{Error: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
