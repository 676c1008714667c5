package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// SaveExtension is the file extension the game uses for save slots.
const SaveExtension = ".celeste"

// SlotCount is the number of save slots checked in a directory.
const SlotCount = 3

// Candidate is a save file found on disk.
type Candidate struct {
	Slot int
	Path string
}

// Locator finds save files in the well-known game directories.
type Locator struct {
	// Home is the user's home directory.
	Home string
	// DataHome is XDG_DATA_HOME. When empty, Home/.local/share is used.
	DataHome string
	// SaveDir, when set, is the only directory checked.
	SaveDir string
}

// PrimaryDir returns the macOS save directory.
func (l Locator) PrimaryDir() string {
	if l.Home == "" {
		return ""
	}
	return filepath.Join(l.Home, "Library", "Application Support", "Celeste", "Saves")
}

// FallbackDir returns the XDG save directory.
func (l Locator) FallbackDir() string {
	dataHome := l.DataHome
	if dataHome == "" {
		if l.Home == "" {
			return ""
		}
		dataHome = filepath.Join(l.Home, ".local", "share")
	}
	return filepath.Join(dataHome, "Celeste", "Saves")
}

// Dir returns the directory that will be searched. The fallback directory is
// only used when the primary one does not exist; they are never combined.
func (l Locator) Dir() string {
	if l.SaveDir != "" {
		return l.SaveDir
	}
	if primary := l.PrimaryDir(); primary != "" && isDir(primary) {
		return primary
	}
	return l.FallbackDir()
}

// Candidates returns the existing save files in slot order.
func (l Locator) Candidates() []Candidate {
	dir := l.Dir()
	if dir == "" {
		log.Debug().Msg("No save directory could be derived from the environment")
		return nil
	}

	var found []Candidate
	for slot := 0; slot < SlotCount; slot++ {
		path := filepath.Join(dir, SlotFileName(slot))

		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn().Err(err).Str("path", path).Msg("Error checking save slot")
			}
			continue
		}
		if info.IsDir() {
			continue
		}

		found = append(found, Candidate{Slot: slot, Path: path})
	}

	log.Debug().Int("count", len(found)).Str("dir", dir).Msg("Discovered save files")
	return found
}

// Locate returns the paths of the existing save files in slot order.
func (l Locator) Locate() []string {
	candidates := l.Candidates()
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}
	return paths
}

// SlotFileName returns the file name of a save slot, e.g. "0.celeste".
func SlotFileName(slot int) string {
	return fmt.Sprintf("%d%s", slot, SaveExtension)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
