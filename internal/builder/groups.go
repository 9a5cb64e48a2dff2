package builder

// Group is one of the four fixed group buses.
type Group int

const (
	GroupDrums Group = iota
	GroupBass
	GroupMelody
	GroupAtmos
)

var groupNames = [...]string{
	GroupDrums:  "Drums",
	GroupBass:   "Bass",
	GroupMelody: "Melody",
	GroupAtmos:  "Atmos",
}

// Groups returns every group in provisioning order.
func Groups() []Group {
	return []Group{GroupDrums, GroupBass, GroupMelody, GroupAtmos}
}

// String returns the bus name, which is also the name of its channel strip.
func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return "Unknown"
	}
	return groupNames[g]
}

// ParseGroup maps a declared group name to its bus. Matching is exact and
// case-sensitive: "drums" is not "Drums".
func ParseGroup(name string) (Group, bool) {
	for _, g := range Groups() {
		if groupNames[g] == name {
			return g, true
		}
	}
	return 0, false
}
