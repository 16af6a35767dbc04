// Package mock provides test double implementations of the translate collaborators.
//
// MockResolver implements translate.SessionResolver from a fixed session table
// and MockSink implements translate.ErrorSink by recording every call.
//
// # Usage in Tests
//
//	resolver := mock.NewMockResolver(map[core.SessionID]uint32{42: 7})
//	sink := mock.NewMockSink()
//	tr, _ := translate.NewTranslator(resolver, sink)
//
//	// Inspect what was delivered
//	attached := sink.Attached()
//	copies := sink.Copies()
//
//	// Inject failures
//	sink.AttachErrorFunc = func(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error {
//	    return errors.New("boom")
//	}
package mock
