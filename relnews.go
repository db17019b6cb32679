// Package relnews surfaces current release information for Dynatrace
// components. It looks up the latest released version of a component and a
// human-readable summary of its release notes by delegating both lookups to
// an external LLM completion service with web search enabled.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, scrape/).
package relnews
