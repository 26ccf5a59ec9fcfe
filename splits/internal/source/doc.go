// Package source reads run and timer state for the splits board.
//
// Every source returns a *types.Live snapshot per call to Snapshot. New
// picks the implementation from the configured type:
//   - file: a YAML document holding the run and a state block; reloaded when
//     the file's modification time changes, and watchable with fsnotify
//   - http: polls a timer's JSON state endpoint through an authenticating
//     round tripper
//   - sqlite: a stored run and its last state, written by Import
//
// Document is the shared wire format. Times are clock strings ("1:23.45"),
// Go durations ("83.5s") or, in JSON, numbers of seconds; an absent time
// is unknown.
package source
