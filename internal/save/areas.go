package save

// Area identifies one of the chapters tracked in a summary.
type Area int

const (
	Prologue Area = iota
	City
	Site
	Resort
	Ridge
	Temple
	Reflection
	Summit
	Core
	Farewell
)

// AreaCount is the number of known areas.
const AreaCount = 10

type areaInfo struct {
	name  string
	sid   string
	title string
}

// The SIDs must match the ones written by the game byte for byte.
var areaTable = [AreaCount]areaInfo{
	Prologue:   {"prologue", "Celeste/0-Intro", "Prologue"},
	City:       {"city", "Celeste/1-ForsakenCity", "Forsaken City"},
	Site:       {"site", "Celeste/2-OldSite", "Old Site"},
	Resort:     {"resort", "Celeste/3-CelestialResort", "Celestial Resort"},
	Ridge:      {"ridge", "Celeste/4-GoldenRidge", "Golden Ridge"},
	Temple:     {"temple", "Celeste/5-MirrorTemple", "Mirror Temple"},
	Reflection: {"reflection", "Celeste/6-Reflection", "Reflection"},
	Summit:     {"summit", "Celeste/7-Summit", "The Summit"},
	Core:       {"core", "Celeste/9-Core", "Core"},
	Farewell:   {"farewell", "Celeste/LostLevels", "Farewell"},
}

var areasBySID = func() map[string]Area {
	m := make(map[string]Area, AreaCount)
	for i, info := range areaTable {
		m[info.sid] = Area(i)
	}
	return m
}()

// AllAreas returns the known areas in chapter order.
func AllAreas() []Area {
	areas := make([]Area, AreaCount)
	for i := range areas {
		areas[i] = Area(i)
	}
	return areas
}

// AreaForSID maps a save-file SID to a known area. Areas outside the base
// game (custom level sets, unknown chapters) report false.
func AreaForSID(sid string) (Area, bool) {
	a, ok := areasBySID[sid]
	return a, ok
}

func (a Area) valid() bool { return a >= 0 && a < AreaCount }

// String returns the stable lowercase identifier, e.g. "city".
func (a Area) String() string {
	if !a.valid() {
		return "unknown"
	}
	return areaTable[a].name
}

// SID returns the identifier the game uses for the area in save files.
func (a Area) SID() string {
	if !a.valid() {
		return ""
	}
	return areaTable[a].sid
}

// Title returns the in-game chapter title.
func (a Area) Title() string {
	if !a.valid() {
		return ""
	}
	return areaTable[a].title
}

// Chapter returns the chapter number shown in reports.
func (a Area) Chapter() int { return int(a) }

// Side is the positional A/B/C variant of an area.
type Side int

const (
	SideA Side = iota
	SideB
	SideC
)

// SideCount is the number of sides per area.
const SideCount = 3

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	case SideC:
		return "C"
	}
	return "?"
}

// AllSides returns the sides in positional order.
func AllSides() []Side {
	return []Side{SideA, SideB, SideC}
}
