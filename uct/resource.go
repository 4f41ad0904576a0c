package uct

// DeviceType classifies the physical reach of a transport resource.
type DeviceType int

const (
	// DeviceSelf reaches only the local process.
	DeviceSelf DeviceType = iota
	// DeviceSharedMemory reaches other processes on the same host.
	DeviceSharedMemory
	// DeviceNetwork reaches remote hosts.
	DeviceNetwork
)

func (d DeviceType) String() string {
	switch d {
	case DeviceSelf:
		return "self"
	case DeviceSharedMemory:
		return "shm"
	case DeviceNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Cost models a linear cost function of the form Overhead + Growth*n, used
// for both interface latency and memory-domain registration cost.
type Cost struct {
	Overhead float64
	Growth   float64
}

// Capabilities is the scored, filterable view of what a transport resource
// (or, on the remote side, an advertised remote interface) can do.
type Capabilities struct {
	Iface   InterfaceFlag
	Atomic  AtomicCapabilities
	Latency Cost
	// Bandwidth is the advertised one-directional bandwidth in bytes/sec.
	Bandwidth float64
	// Overhead is the fixed per-operation CPU overhead in seconds.
	Overhead float64
	// Priority breaks ties between otherwise equally-scored resources.
	Priority int
	// AMMaxBcopy bounds the largest active-message payload sent without a
	// zero-copy transfer, used by the AM-BW score function. Meaningful for
	// local resources only.
	AMMaxBcopy uint64
}

// Resource describes one transport resource available to the local worker:
// an (interface, memory domain, device) triple plus its capabilities.
type Resource struct {
	Index         int
	MDIndex       int
	DeviceIndex   int
	DeviceType    DeviceType
	TransportName string
	ClassFlags    ResourceClassFlag
	MDFlags       MDFlag
	RegCost       Cost
	Capabilities  Capabilities
	// AtomicCapable marks resources the worker has explicitly designated
	// for atomic operations, independent of advertised atomic flags.
	AtomicCapable bool
}

// IsAuxOnly reports whether this resource may only be used for auxiliary
// (wireup bootstrap) selection.
func (r *Resource) IsAuxOnly() bool {
	return r.ClassFlags&ClassAuxOnly != 0
}

// IsSelfOrShared reports whether the resource reaches only the local
// process or other processes on the same host. Both the generic multi-lane
// loop and the AM-BW seed step special-case these devices, since neither
// benefits from the multi-rail bandwidth aggregation applied to network
// devices.
func (r *Resource) IsSelfOrShared() bool {
	return r.DeviceType == DeviceSelf || r.DeviceType == DeviceSharedMemory
}

// IsPeerToPeer reports whether the resource requires per-endpoint address
// exchange (CONNECT_TO_EP) rather than being reachable by connecting to a
// shared interface address (CONNECT_TO_IFACE).
func (r *Resource) IsPeerToPeer() bool {
	return r.Capabilities.Iface&ConnectToEp != 0 && r.Capabilities.Iface&ConnectToIface == 0
}
