// Package syncclient wraps a RemoteStore for a single collection.
//
// A Client never lets remote trouble leak into the local write path:
// pushes and deletes log and return a *SyncError for the caller to discard,
// FetchAllOnce degrades to an empty result, and Listen simply closes its
// channel when the remote stream fails.
package syncclient
