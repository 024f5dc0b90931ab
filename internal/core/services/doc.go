// Package services implements the core business logic of MarketForge.
//
// Services implement the driving ports and depend only on driven ports,
// so every collaborator (generation backend, embedder, text extractor,
// stores) is injected and can be replaced with a deterministic stub.
//
// The generation path is:
//
//	idea + document -> Retriever -> Pipeline -> BuildSchedule -> AssembleLaunchKit
package services
