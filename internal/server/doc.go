// Package server hosts the Fiber HTTP service and the bootstrap that wires it
// together with its collaborators. server.New loads the env file and env
// vars, initializes the logger, builds exactly one Handle, then hands itself
// to the plugin and route factories in that order. Start binds the listener
// and emits the starting/started lifecycle events around it.
// Keep exports narrow and accept explicit dependencies through Options so
// tests can swap the factories.
package server
