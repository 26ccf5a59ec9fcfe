// Package config loads and watches the splits configuration file (splits.yaml).
//
// Top-level types:
//   - Config{Source, RefreshInterval, Layout, Server}: full tree parsed from YAML
//   - Source: type (file|http|sqlite), path, endpoint, run, auth
//   - AuthConfig: mode (apikey|bearer|basic|none), header, key_env, token_env,
//     username, password_env; Key(), Token() and Password() read the environment
//   - Layout: visible rows, columns, accuracies, subsplit and header toggles,
//     colors; Settings() and ColumnSpecs() convert it for the row engine
//   - ServerConfig: http port, API auth, frame TTL, broadcast interval
//
// Load(path) reads the YAML file, applies defaults, then validates required
// fields and enums. Watch(ctx, path, onChange) reloads the file on change and
// keeps the previous config when a reload fails.
package config
