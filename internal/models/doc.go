// Package models defines the banking entities that live both in the local
// store on the device and in the remote document store.
//
// Every entity carries a client-generated ID that is the local primary key
// and the remote document key at the same time; it never changes for the
// lifetime of the entity. Amounts and rates are decimal.Decimal, times are
// UTC with millisecond precision.
package models

// Entity is implemented by every synced record.
type Entity interface {
	EntityID() string
}
