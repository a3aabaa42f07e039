// Package rpsl defines the generic data model for RPSL (Routing Policy
// Specification Language) records: attributes, objects, and their
// re-serialization.
//
// An RPSL object is an ordered list of attribute/value pairs. The first
// attribute is the class attribute: its name is the object's RPSL class
// (aut-num, route, mntner, ...) and its value is the object's primary key.
// Duplicate attribute names are common and preserved in source order.
//
// The model is schema-agnostic. Parsing lives in rpsl/parser, typed
// projection in rpsl/schema.
//
// Basic usage:
//
//	r := parser.NewReader(f)
//	for {
//	    obj, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(obj.Class(), obj.Key())
//	}
package rpsl
