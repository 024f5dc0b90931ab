// Package domain defines the core business entities for MarketForge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: An uploaded reference document (bytes + MIME type)
//   - Passage: A bounded span of extracted document text
//   - Stage: One ordered step of the generation pipeline
//   - LaunchKit: The assembled output for one product idea
//   - ScheduleItem: One dated, timed social-post assignment
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
