// Package schema flattens generic RPSL objects into fixed-column typed
// records.
//
// A Schema is an ordered mapping of column name to cardinality: Single
// (0 or 1 value per object) or Multi (0..N values, order preserved).
// Project applies a schema to one object:
//
//	sch := schema.New().Single("route").Single("origin").Multi("mnt-by")
//	rec, err := schema.Project(obj, sch)
//
// Attributes absent from the schema are dropped silently. A second
// occurrence of a Single column fails the projection for that object only.
// Missing Single columns stay absent (distinct from present-but-empty);
// missing Multi columns are empty slices. Column order in the record follows
// the schema, not the object.
//
// Schemas can also be declared in YAML:
//
//	columns:
//	  route: single
//	  origin: single
//	  mnt-by: multi
package schema
