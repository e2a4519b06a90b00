// Package lib provides a Go SDK for the task list client.
//
// It exposes the same operations as the tasks CLI (add, list and remove
// tasks on a Firebase Realtime Database) without shelling out to the binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{
//	    Endpoint: "https://my-db.firebaseio.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	task, err := client.AddTask(ctx, "Buy milk")
//	if err != nil {
//	    // Same message the client state holds, e.g. "Request failed!".
//	    fmt.Println(client.State().Error)
//	}
//
// # Task list
//
// By default the local task list lives in memory for the lifetime of the
// client. Set [Config].DBPath to persist it in a SQLite database.
//
// # Request state
//
// Every request updates the client [State] (loading flag and error message).
// Only the latest started request updates it, set [Config].CancelInFlight to
// also cancel the previous request when a new one starts.
package lib
