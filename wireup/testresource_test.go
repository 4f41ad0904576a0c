package wireup

import "github.com/openucx-go/ucx-go/uct"

// testResource and testAddress build minimal, spec-shaped local/remote
// entries for scenario tests, keeping each test focused on the flags that
// matter to it rather than a full attribute record.
func testResource(index int, dt uct.DeviceType, iface uct.InterfaceFlag) uct.Resource {
	return uct.Resource{
		Index:         index,
		MDIndex:       index,
		DeviceIndex:   index,
		DeviceType:    dt,
		TransportName: "test",
		MDFlags:       uct.MDReg | uct.MDAlloc | uct.MDNeedRkey,
		Capabilities: uct.Capabilities{
			Iface:      iface,
			Bandwidth:  1e10,
			Overhead:   1e-7,
			Latency:    uct.Cost{Overhead: 1e-7, Growth: 1e-9},
			AMMaxBcopy: 8192,
		},
	}
}

func testAddress(index int, dt uct.DeviceType, iface uct.InterfaceFlag) uct.AddressEntry {
	return uct.AddressEntry{
		Index:         index,
		MDIndex:       index,
		DeviceIndex:   index,
		DeviceType:    dt,
		TransportName: "test",
		MDFlags:       uct.MDReg | uct.MDAlloc | uct.MDNeedRkey,
		Capabilities: uct.Capabilities{
			Iface:     iface,
			Bandwidth: 1e10,
			Overhead:  1e-7,
			Latency:   uct.Cost{Overhead: 1e-7},
		},
	}
}

// alwaysReachable is the simplest reachability predicate: every local
// resource can reach every remote entry, used by scenario tests that don't
// exercise device-topology gating.
func alwaysReachable(local *uct.Resource, remote *uct.AddressEntry) bool {
	return true
}

// matchingIndexReachable models a topology where a local resource can
// only reach the remote entry at the same index — used by the two-rail
// scenario to keep each rail paired with its mirror.
func matchingIndexReachable(local *uct.Resource, remote *uct.AddressEntry) bool {
	return local.Index == remote.Index
}
