// Package firebase knows the Firebase Realtime Database REST layout of the task list.
package firebase

import (
	"net/url"
	"strings"
)

// DefaultEndpoint is the database used when none is configured.
const DefaultEndpoint = "https://react-http-9b230-default-rtdb.firebaseio.com"

const tasksPath = "tasks"

// TasksURL returns the URL of the task collection.
func TasksURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + "/" + tasksPath + ".json"
}

// TaskURL returns the URL of a single task.
func TaskURL(endpoint, id string) string {
	return strings.TrimRight(endpoint, "/") + "/" + tasksPath + "/" + url.PathEscape(id) + ".json"
}

// PushResponse is the response of a POST on a collection, Name holds the generated ID.
type PushResponse struct {
	Name string `json:"name"`
}

// TaskData is the stored representation of a task.
type TaskData struct {
	Text string `json:"text"`
}
