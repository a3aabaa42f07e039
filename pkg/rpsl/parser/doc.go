// Package parser implements the streaming RPSL tokenizer and object builder.
//
// The parser is a single-pass, pull-based reader: each input line is
// classified (comment, blank, continuation, attribute, malformed), fed to an
// object builder that reconstructs multi-line values, and completed objects
// are yielded one at a time. Memory stays bounded by the largest single
// object, so multi-gigabyte registry dumps can be read in a stream.
//
//	r := parser.NewReader(src)
//	for {
//	    obj, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // obj.Class(), obj.Attributes ...
//	}
//
// Malformed lines fail the read by default (strict mode). With
// WithLenient(true) they are skipped and recorded; Skipped() returns them
// after the read.
//
// Two quirks of real registry dumps are accepted beyond the base format:
// a leading "+" marks a continuation line (RFC 2622), and a bare "EOF" line
// terminates the stream (APNIC dumps end this way).
package parser
