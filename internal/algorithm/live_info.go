package algorithm

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/bandkon/kon/pkg/collections"
	appErrors "github.com/bandkon/kon/pkg/errors"
)

// bandHashWidth is the number of distinct users a single run can address.
// Bit k of a band's hash is set iff user k belongs to that band; capped at
// 64 so the member-conflict check stays a single machine-word AND.
const bandHashWidth = 64

// LiveInfo is the interned, denormalized view of bands, members and
// schedules that the search consumes. It is built once from ingestion
// inputs, never mutated afterward, and is safe to share by reference across
// parallel tasks.
type LiveInfo struct {
	userNames []string // indexed by UserId

	bandNames   []string    // indexed by BandId, sorted
	bandMembers [][]UserId  // indexed by BandId
	bandHash    []uint64    // indexed by BandId
	bandSchedule [][]bool   // indexed by BandId, aligned to spans

	// blockEligible[block] is the set of bands whose availability permits
	// that block's span, represented as a Bitset over BandId.
	blockEligible []*collections.Bitset
}

// UserIds returns every interned user, in sorted-name order.
func (li *LiveInfo) UserIds() []UserId {
	var reg IdentifierRegistry[UserId]
	ids := make([]UserId, len(li.userNames))
	for i := range ids {
		ids[i] = reg.Mint()
	}
	return ids
}

// UserName returns the identifier string a UserId was minted from.
func (li *LiveInfo) UserName(id UserId) string {
	return li.userNames[id]
}

// BandIds returns every interned band, sorted by name.
func (li *LiveInfo) BandIds() []BandId {
	var reg IdentifierRegistry[BandId]
	ids := make([]BandId, len(li.bandNames))
	for i := range ids {
		ids[i] = reg.Mint()
	}
	return ids
}

// BandName returns a band's source name.
func (li *LiveInfo) BandName(id BandId) string {
	return li.bandNames[id]
}

// BandMembers returns the members of a band, as interned UserIds.
func (li *LiveInfo) BandMembers(id BandId) []UserId {
	return li.bandMembers[id]
}

// BandHash returns the member-overlap bitmask for a band: bit k set iff
// user k belongs to it. Two bands conflict iff BandHash(a) & BandHash(b) != 0.
func (li *LiveInfo) BandHash(id BandId) uint64 {
	return li.bandHash[id]
}

// BandAvailable reports whether a band may be scheduled in the given span.
func (li *LiveInfo) BandAvailable(id BandId, span SpanId) bool {
	sched := li.bandSchedule[id]
	if int(span) >= len(sched) {
		return false
	}
	return sched[span]
}

// BlockEligible returns the set of bands eligible for a block (those whose
// availability vector is true at that block's span), precomputed at
// construction.
func (li *LiveInfo) BlockEligible(block BlockId) *collections.Bitset {
	return li.blockEligible[block]
}

// BuildLiveInfo interns the band/schedule tables and precomputes per-block
// eligibility against the given room matrix. bandTable maps band name to its
// ordered member list; scheduleTable maps band name to its per-span
// availability vector (length must be >= rm.SpanCount(); bands absent from
// scheduleTable are treated as available everywhere).
//
// Returns CodeCapacityOverflow if the number of distinct users exceeds the
// band-hash bitmask width, or CodeInputInconsistency if a schedule entry is
// too short or names a band absent from bandTable.
func BuildLiveInfo(bandTable map[string][]string, scheduleTable map[string][]bool, rm *RoomMatrix) (*LiveInfo, error) {
	for name := range scheduleTable {
		if _, ok := bandTable[name]; !ok {
			return nil, appErrors.Wrap(appErrors.CodeInputInconsistency, "schedule table names an unknown band", fmt.Errorf("band %q", name))
		}
	}

	seen := map[string]bool{}
	var userNames []string
	for _, members := range bandTable {
		for _, member := range members {
			if seen[member] {
				continue
			}
			seen[member] = true
			userNames = append(userNames, member)
		}
	}
	sort.Strings(userNames)
	var userReg IdentifierRegistry[UserId]
	userIndex := map[string]UserId{}
	for _, name := range userNames {
		userIndex[name] = userReg.Mint()
	}

	if len(userNames) > bandHashWidth {
		return nil, appErrors.New(appErrors.CodeCapacityOverflow, "user count exceeds band-hash bitmask width")
	}

	var bandNames []string
	for name := range bandTable {
		bandNames = append(bandNames, name)
	}
	sort.Strings(bandNames)

	spanCount := rm.SpanCount()

	li := &LiveInfo{
		userNames:    userNames,
		bandNames:    bandNames,
		bandMembers:  make([][]UserId, len(bandNames)),
		bandHash:     make([]uint64, len(bandNames)),
		bandSchedule: make([][]bool, len(bandNames)),
	}

	var bandReg IdentifierRegistry[BandId]
	for _, name := range bandNames {
		bandID := bandReg.Mint()
		members := bandTable[name]
		ids := make([]UserId, len(members))
		var hash uint64
		for j, m := range members {
			id := userIndex[m]
			ids[j] = id
			hash |= uint64(1) << uint(id)
		}
		li.bandMembers[bandID] = ids
		li.bandHash[bandID] = hash

		sched, ok := scheduleTable[name]
		if !ok {
			full := make([]bool, spanCount)
			for s := range full {
				full[s] = true
			}
			li.bandSchedule[bandID] = full
			continue
		}
		if len(sched) < spanCount {
			return nil, appErrors.Wrap(appErrors.CodeInputInconsistency, "schedule vector shorter than span count", fmt.Errorf("band %q", name))
		}
		li.bandSchedule[bandID] = sched
	}

	blocks := rm.Blocks()
	li.blockEligible = make([]*collections.Bitset, len(blocks))
	for _, block := range blocks {
		span := rm.BlockSpan(block)
		set := collections.NewBitset(len(bandNames))
		for bandID := 0; bandID < len(bandNames); bandID++ {
			if li.BandAvailable(BandId(bandID), span) {
				set.Set(bandID)
			}
		}
		li.blockEligible[block] = set
	}

	return li, nil
}

// popcount returns the number of set bits in a band-hash mask. Nothing in
// the package calls it at present.
func popcount(x uint64) int {
	return bits.OnesCount64(x)
}
