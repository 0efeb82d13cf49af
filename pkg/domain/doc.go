// Package domain holds the core types of the complaint intake flow: the
// conversation session with its closed state set, and the immutable complaint
// record produced at finalization. It has no dependencies on adapters.
package domain
