// Package pbx builds and serializes the project descriptor object graph.
//
// The graph is assembled fresh on every run from the classified source
// inventory and the project definition: file references, per-phase build
// file wrappers, the group tree mirroring the directory structure, the four
// build phases, the native target, the build configurations, and the
// project root object. A referential closure check runs before
// serialization so a broken cross-reference can never reach the output
// file. The serializer renders the graph in the pbxproj grammar with fully
// deterministic ordering, making reruns byte-identical.
package pbx
