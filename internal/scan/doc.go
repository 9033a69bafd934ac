// Package scan walks the project source tree and classifies every entry by
// role: compiled source, header, opaque asset catalog, or passthrough. The
// resulting inventory is the sole filesystem input to the graph assembler.
package scan
