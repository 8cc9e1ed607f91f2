// Package kernel contains the shared value objects of the domain model:
// entity identifiers (UUID) and currency amounts (Money). Both are immutable,
// validated at construction, and safe for concurrent use.
package kernel
