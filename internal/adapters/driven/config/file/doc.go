// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the marketforge home directory.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable stage prompt templates
//   - PromptWatcher: reloads prompts when their files change
package file
