// Package recordmap generates a runtime record type and the SQL to persist
// it from a declarative field list, without a fixed struct or table
// definition written ahead of time.
//
// A caller describes each field of a record (name, semantic type, control
// metadata) as JSON. BuildDescriptor turns that list into a validated
// runtime type descriptor with a generated integer identity field. A
// SQLGenerator derives parameterized CREATE/SELECT/INSERT/UPDATE/DELETE
// statements from the same descriptor, and a RecordStore keeps an in-memory
// tabular cache, descriptor-typed record instances, and a backing store
// consistent across add, update, and delete, calling out to injected
// persistence callbacks.
//
// A RecordStore is single-threaded by contract: it performs no locking and
// assumes exclusive ownership by its caller.
package recordmap
