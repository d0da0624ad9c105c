package snapshot

import (
	"sort"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// View is the indexed per-world snapshot built once per tick and shared by
// every component that works on that world. It is read-only after
// construction.
type View struct {
	Info       WorldInfo
	Facilities []FacilitySnapshot
	Nodes      []NodeSnapshot
	Deposits   []DepositSnapshot
	Hostiles   []HostileSnapshot
	Dropped    []DroppedSnapshot
	Salvage    []SalvageSnapshot
	Orders     []ConstructionOrder

	facilityByID map[string]*FacilitySnapshot
	byType       map[FacilityType][]*FacilitySnapshot
}

// BuildView constructs the indexed view for one world from the provider.
func BuildView(p WorldProvider, info WorldInfo) *View {
	v := &View{
		Info:       info,
		Facilities: p.Facilities(info.ID),
		Nodes:      p.ExtractionNodes(info.ID),
		Deposits:   p.MineralDeposits(info.ID),
		Hostiles:   p.Hostiles(info.ID),
		Dropped:    p.Dropped(info.ID),
		Salvage:    p.Salvage(info.ID),
		Orders:     p.ConstructionOrders(info.ID),
	}
	v.index()
	return v
}

// NewView constructs a view from explicit slices. Used by tests and the
// built-in simulation.
func NewView(info WorldInfo, facilities []FacilitySnapshot) *View {
	v := &View{Info: info, Facilities: facilities}
	v.index()
	return v
}

func (v *View) index() {
	v.facilityByID = make(map[string]*FacilitySnapshot, len(v.Facilities))
	v.byType = make(map[FacilityType][]*FacilitySnapshot)
	for i := range v.Facilities {
		f := &v.Facilities[i]
		v.facilityByID[f.ID] = f
		v.byType[f.Type] = append(v.byType[f.Type], f)
	}
}

// Facility resolves a facility by id. ok=false means the id is stale.
func (v *View) Facility(id string) (*FacilitySnapshot, bool) {
	f, ok := v.facilityByID[id]
	return f, ok
}

// OfType returns all facilities of one type, in snapshot order.
func (v *View) OfType(t FacilityType) []*FacilitySnapshot {
	return v.byType[t]
}

// FirstOfType returns the first facility of one type, or nil.
func (v *View) FirstOfType(t FacilityType) *FacilitySnapshot {
	fs := v.byType[t]
	if len(fs) == 0 {
		return nil
	}
	return fs[0]
}

// Storage returns the central storage facility, or nil.
func (v *View) Storage() *FacilitySnapshot {
	return v.FirstOfType(FacilityStorage)
}

// Controller returns the world controller, or nil.
func (v *View) Controller() *FacilitySnapshot {
	return v.FirstOfType(FacilityController)
}

// Node resolves an extraction node by id.
func (v *View) Node(id string) (*NodeSnapshot, bool) {
	for i := range v.Nodes {
		if v.Nodes[i].ID == id {
			return &v.Nodes[i], true
		}
	}
	return nil, false
}

// NearestFacility returns the closest facility of the given type to a
// position, by range. Returns nil when none exists.
func (v *View) NearestFacility(t FacilityType, pos shared.Position) *FacilitySnapshot {
	var best *FacilitySnapshot
	bestRange := 0
	for _, f := range v.byType[t] {
		r := f.Pos.RangeTo(pos)
		if best == nil || r < bestRange {
			best = f
			bestRange = r
		}
	}
	return best
}

// FacilitiesInRange returns facilities of the given type within r of pos,
// closest first.
func (v *View) FacilitiesInRange(t FacilityType, pos shared.Position, r int) []*FacilitySnapshot {
	var out []*FacilitySnapshot
	for _, f := range v.byType[t] {
		if f.Pos.InRange(pos, r) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pos.RangeTo(pos) < out[j].Pos.RangeTo(pos)
	})
	return out
}
