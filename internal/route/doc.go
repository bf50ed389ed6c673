// Package route owns the per-instance route table: the /-/ diagnostics
// endpoints and static directory mounts declared under server.static.
// The Manager is built once by server.New after plugins have loaded, so the
// diagnostics endpoints can report the plugin set of the same instance.
package route
