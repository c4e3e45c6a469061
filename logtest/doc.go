// Package logtest captures log events for inspection in tests.
//
// A [LogList] registers itself with a [logfront.Registry] when created and
// records every dispatched event until it is closed:
//
//	list := logtest.Capture(t) // closed by t.Cleanup
//	svc.Run()
//	logtest.Expect(t, list).Info("started")
//	logtest.Expect(t, list.Subset("db")).WarnContaining("slow query")
//
// Predicates ([IsInfo], [IsInfoContaining], [IsInfoMatching], ...) test a
// single [logfront.LogEvent]. Assertions on [Events] ([Events.ShouldHaveInfo],
// ...) return an [*AssertionError] that embeds the full captured transcript.
package logtest
