package uct

// AddressEntry is the unpacked, per-transport view of a single entry in a
// remote peer's exchanged address. It mirrors Resource for the remote side:
// same shape of capabilities, but no local-only fields (registration cost,
// device index into a local resource array, auxiliary classification).
type AddressEntry struct {
	Index         int
	MDIndex       int
	DeviceIndex   int
	DeviceType    DeviceType
	TransportName string
	MDFlags       MDFlag
	// TLNameChecksum is a checksum of the remote transport name, carried in
	// the wire address to let the local side skip full string comparison
	// when matching resources by transport. The selector itself does not
	// read it; its diagnostics name the transport by TransportName.
	TLNameChecksum uint64
	Capabilities   Capabilities
}

// ReachabilityFunc reports whether a local resource can reach a remote
// address entry at all (independent of capability matching). The transport
// layer is expected to provide this; the selector treats it as an opaque
// predicate.
type ReachabilityFunc func(local *Resource, remote *AddressEntry) bool
