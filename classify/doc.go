// Package classify recognizes the validation engine's diagnostic messages.
//
// Classification is driven by an ordered rule table (a copy is returned by
// Rules): each Rule matches a message prefix and, optionally, a substring.
// Rules are evaluated top to bottom and the first match wins; a message no
// rule matches is ClassForeign.
//
// The extractor functions pull structured fields out of a classified message
// by fixed markers and offsets:
//
//	if classify.Classify(msg) == classify.ClassTooManyElements {
//	    path, ok := classify.ExtractPath(msg)
//	    ...
//	}
//
// Every extractor reports failure through its boolean result instead of
// panicking. Whether a failure is a contract violation or an expected absence
// is decided by the caller (see package translate).
package classify
