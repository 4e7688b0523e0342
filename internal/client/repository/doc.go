// Package repository joins a local Store and a remote sync Client into one
// offline-first, two-way synced table.
//
// Writes always land locally first. Writes with LocalOrigin are then pushed;
// writes with RemoteOrigin (the ones the pull path applies) never are, which
// keeps a remote snapshot from echoing back to the server. Reads never touch
// the network.
//
// Conflicts resolve by arrival: whichever write reaches the local store last
// wins, regardless of which side produced it.
package repository
