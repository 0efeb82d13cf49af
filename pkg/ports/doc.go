// Package ports defines the boundaries of the intake core: session and
// complaint persistence, document rendering, archiving and delivery. Adapters
// implement these interfaces; the engine depends only on them.
package ports
