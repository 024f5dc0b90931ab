// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LLMService: Text generation for every pipeline stage
//   - PromptStore: Stage prompt templates
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - NormaliserRegistry: Text extraction. Without it, documents are ignored.
//   - EmbeddingService: Vector embeddings. Without it, retrieval returns empty context.
//   - LaunchKitStore: History persistence. Without it, kits are not saved.
//   - CalendarPublisher: Calendar push. Without it, publish is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
