// Package ltsv reads and writes single records of Labeled Tab-separated
// Values (LTSV). A record is one line of tab-separated `label:value` fields:
//
//	time:[10/Oct/2000:13:55:36 -0700]	host:testhost	status:200	done:true	score:-1
//
// Decoding splits the line on tabs and each field on its first colon, then
// infers a scalar type for every value (bool, then u64, i64, f64, else
// string) and materializes the resulting map into the caller's type via the
// value package:
//
//	type Foo struct {
//		A string `ltsv:"a"`
//		B int8   `ltsv:"b"`
//		C bool   `ltsv:"c"`
//	}
//	foo, err := ltsv.Decode[Foo]("a:Test\tb:8\tc:false")
//
// Encoding flattens a value into a map and writes its scalar entries in
// ascending label order:
//
//	line, err := ltsv.Marshal(foo) // "a:Test\tb:8\tc:false"
//
// Labels and values are not escaped: a tab in either, or a colon in a label,
// does not survive a round trip. Each call handles exactly one line and keeps
// no state, so all functions are safe for concurrent use.
package ltsv
