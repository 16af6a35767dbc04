// Package translate turns datastore validation messages into NETCONF protocol errors.
//
// A Translator classifies a validation message with the classify rule table,
// extracts the fields its class carries, assembles a core.ProtocolError and
// attaches it to a destination session through an ErrorSink. Messages no rule
// recognizes are not reshaped: the source session's errors are copied to the
// destination verbatim.
//
// # Usage
//
//	tr, err := translate.NewTranslator(registry, repo, translate.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	// Generic validation failure of an edit
//	err = tr.Edit(ctx, srcSession, dstSession, records)
//
//	// Datastore lock held by another session
//	err = tr.LockDenied(ctx, dstSession, records[0])
//
// The pure functions Translate, Assemble and LockConflict perform the same
// work without touching a sink and are safe to call from anywhere.
//
// # Contract Violations
//
// A classified message that lacks a field its class guarantees (for example a
// "Too many" message without a location) means the rule table and the
// validation engine disagree. Such messages yield a *ContractError and nothing
// is attached. WithStrictContracts turns these into panics for development builds.
package translate
