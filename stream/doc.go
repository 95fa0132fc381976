// Package stream reads and re-emits native files one row at a time.
//
// A Stream parses the signature and column definitions when it is opened and
// then decodes rows lazily. Iteration is forward-only; a decode failure is
// logged, recorded for Err, and ends the sequence without invalidating the
// rows already returned.
//
// A Writer emits the signature and definitions once, then rows with their
// length prefixes recomputed, optionally permuting the columns.
//
//	s, err := stream.Open(f, stream.WithName(path))
//	if err != nil {
//	    return err
//	}
//	w, err := stream.NewWriter(out, s.Definitions())
//	if err != nil {
//	    return err
//	}
//	if err := w.WriteHeader(s.Signature()); err != nil {
//	    return err
//	}
//	for row := range s.All() {
//	    if err := w.WriteRow(row); err != nil {
//	        return err
//	    }
//	}
package stream
