// Package todo parses, validates, and updates the stored task list.
//
// The task list is stored under the "tasks" key as a JSON array of strings:
//
//	["Buy milk", "Call the bank"]
//
// A task has no id, timestamp or completion flag. Its identity is its
// position in the list and list order is insertion order.
//
// # Validation
//
// Stored values are checked against an embedded JSON Schema
// (draft 2020-12) before they are decoded. A value that is not an array
// of strings is rejected with a *ValidationError naming the offending path,
// for example "[2]: expected string, but got number".
package todo
