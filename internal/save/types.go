package save

// SideProgress is the progress recorded for one side of an area.
type SideProgress struct {
	Strawberries int
	Deaths       int
	HeartGem     bool
	Completed    bool
}

// AreaProgress holds the A, B and C sides of an area, in that order.
type AreaProgress struct {
	Sides [SideCount]SideProgress
}

// Side returns the progress for the given side.
func (a AreaProgress) Side(s Side) SideProgress {
	return a.Sides[s]
}

// GameProgress holds one AreaProgress per known area.
type GameProgress struct {
	areas [AreaCount]AreaProgress
}

// Get returns the progress recorded for an area.
func (g GameProgress) Get(a Area) AreaProgress {
	return g.areas[a]
}

func (g *GameProgress) set(a Area, p AreaProgress) {
	g.areas[a] = p
}

// AreaEntry pairs an area with its progress.
type AreaEntry struct {
	Area     Area
	Progress AreaProgress
}

// Areas returns every known area in chapter order.
func (g GameProgress) Areas() []AreaEntry {
	entries := make([]AreaEntry, 0, AreaCount)
	for _, a := range AllAreas() {
		entries = append(entries, AreaEntry{Area: a, Progress: g.areas[a]})
	}
	return entries
}

// Summary is the progress summary extracted from a single save file.
type Summary struct {
	// Version is the game version that wrote the file, e.g. 1.4.0.0.
	Version    string
	PlayerName string

	CheatMode   bool
	AssistMode  bool
	VariantMode bool

	Strawberries       int
	GoldenStrawberries int
	Deaths             int
	Jumps              int
	Dashes             int
	WallJumps          int

	Progress GameProgress
}

// RegularStrawberries returns the strawberry total without golden strawberries.
func (s *Summary) RegularStrawberries() int {
	if s.GoldenStrawberries > s.Strawberries {
		return 0
	}
	return s.Strawberries - s.GoldenStrawberries
}
