package wireup

import (
	"errors"
	"testing"

	"github.com/openucx-go/ucx-go/uct"
)

func TestEvaluatePicksBestScoringReachablePair(t *testing.T) {
	local := []uct.Resource{
		testResource(0, uct.DeviceNetwork, uct.AMBcopy|uct.CBSync),
		testResource(1, uct.DeviceNetwork, uct.AMBcopy|uct.CBSync),
	}
	local[0].Capabilities.Overhead = 1e-6
	local[1].Capabilities.Overhead = 1e-9 // lower overhead => higher small-message-latency score

	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, uct.AMBcopy|uct.CBSync)}

	criteria := Criteria{
		Title:            "active messages",
		RemoteIfaceFlags: uct.AMBcopy | uct.CBSync,
		LocalIfaceFlags:  uct.AMBcopy,
		Score:            smallMessageLatencyScore,
	}

	info, err := evaluate(local, remote, alwaysReachable, criteria, defaultMasks(), &Options{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if info.LocalResource != 1 {
		t.Fatalf("expected resource 1 (lower overhead) to win, got %d", info.LocalResource)
	}
}

func TestEvaluateUnreachableWhenNoRemoteSurvivesFilter(t *testing.T) {
	local := []uct.Resource{testResource(0, uct.DeviceNetwork, uct.AMBcopy)}
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, uct.PutShort)} // no AM flags

	criteria := Criteria{
		Title:            "active messages",
		RemoteIfaceFlags: uct.AMBcopy | uct.CBSync,
		LocalIfaceFlags:  uct.AMBcopy,
		Score:            smallMessageLatencyScore,
	}

	_, err := evaluate(local, remote, alwaysReachable, criteria, defaultMasks(), &Options{})
	if err == nil {
		t.Fatalf("expected UNREACHABLE, got nil")
	}
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected error wrapping ErrUnreachable, got %v", err)
	}
	var ue *UnreachableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UnreachableError, got %T", err)
	}
	if ue.Reason == "" {
		t.Fatalf("expected a non-empty diagnostic reason")
	}
}

func TestEvaluateSkipsUnreachablePairs(t *testing.T) {
	local := []uct.Resource{testResource(0, uct.DeviceNetwork, uct.AMBcopy)}
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, uct.AMBcopy|uct.CBSync)}

	criteria := Criteria{
		RemoteIfaceFlags: uct.AMBcopy | uct.CBSync,
		LocalIfaceFlags:  uct.AMBcopy,
		Score:            smallMessageLatencyScore,
	}

	neverReachable := func(local *uct.Resource, remote *uct.AddressEntry) bool { return false }
	_, err := evaluate(local, remote, neverReachable, criteria, defaultMasks(), &Options{})
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected UNREACHABLE when nothing is reachable, got %v", err)
	}
}

func TestEvaluateSkipsAuxOnlyUnlessOptedIn(t *testing.T) {
	aux := testResource(0, uct.DeviceNetwork, uct.AMBcopy)
	aux.ClassFlags = uct.ClassAuxOnly
	remote := []uct.AddressEntry{testAddress(0, uct.DeviceNetwork, uct.AMBcopy)}

	criteria := Criteria{RemoteIfaceFlags: uct.AMBcopy, LocalIfaceFlags: uct.AMBcopy, Score: smallMessageLatencyScore}
	_, err := evaluate([]uct.Resource{aux}, remote, alwaysReachable, criteria, defaultMasks(), &Options{})
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected aux-only resource to be skipped by default")
	}

	criteria.AllowAuxOnly = true
	info, err := evaluate([]uct.Resource{aux}, remote, alwaysReachable, criteria, defaultMasks(), &Options{})
	if err != nil {
		t.Fatalf("expected aux-only resource to be usable once opted in: %v", err)
	}
	if info.LocalResource != 0 {
		t.Fatalf("unexpected local resource %d", info.LocalResource)
	}
}
