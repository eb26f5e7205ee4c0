// Package linkpair provisions ephemeral veth link pairs.
//
// [Provision] creates both ends of a pair, resolves their kernel indices,
// brings them administratively up and reads their hardware addresses. It
// either returns a Ready [Pair] or an error; a half-built Pair is never
// handed out. [Pair.Close] deletes the pair exactly once.
//
// [With] is the scoped form: it provisions, runs a function and always
// tears the pair down afterwards. A teardown failure there is treated as
// fatal (see [WithFatalHandler]) because an interface left configured on
// the host is worse than a hard stop.
//
//	err := linkpair.With(ctx, linkpair.DefaultConfig(), func(p *linkpair.Pair) error {
//	    a, b := p.Endpoints()
//	    fmt.Println(a.Name(), a.Index(), b.Name(), b.Index())
//	    return runTest(a, b)
//	})
//
// All kernel I/O for a Pair runs on a private worker goroutine; the
// functions here block until their whole sequence has completed.
package linkpair
