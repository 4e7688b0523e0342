// Package dto holds one wire.Codec per entity type.
//
// The wire shape is deliberately independent from the models: keys are
// snake_case, decimals travel as strings, times as Unix milliseconds, and
// optional times are omitted rather than sent as null. FromWire is total;
// a record with missing or mistyped fields decodes to an entity with
// defaults in those fields, and a record without a usable id gets a fresh
// one.
package dto
