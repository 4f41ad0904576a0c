package wireup

import "github.com/openucx-go/ucx-go/uct"

// SockaddrReachableFunc reports whether a given local transport resource
// can reach the sockaddr target the caller has in mind. The target itself
// is not a UCX address and is never compared against remote address
// entries — sockaddr selection never scans them (spec §4.7).
type SockaddrReachableFunc func(local *uct.Resource) bool

// SelectSockaddrTransport implements spec §4.7: iterate the context's
// ordered, sockaddr-capable transport list in priority order and return
// the first one whose reachability predicate accepts the target.
// transports must already be in priority order; this function does not
// sort them.
func SelectSockaddrTransport(transports []uct.Resource, reachable SockaddrReachableFunc) (*uct.Resource, error) {
	for i := range transports {
		if reachable(&transports[i]) {
			return &transports[i], nil
		}
	}
	return nil, ErrUnreachable
}
