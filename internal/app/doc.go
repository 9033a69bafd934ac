// Package app wires the generator's components into a runnable
// application: it owns the logger, the loaded project definition, and the
// linear scan → assemble → validate → serialize → write pipeline.
package app
