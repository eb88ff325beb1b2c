/*
Package session serialises access to persisted tours.

A tour controller is single-threaded. Hosts that serve many users (HTTP, MCP) load the
state of one session, apply a single command and save it back; the Manager makes that
read-modify-write safe with a reference-counted mutex per session and, across replicas,
an optional distributed lock.
*/
package session
