package save

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/ianaindex"
)

// Element and attribute names used by the game's save format.
const (
	areaStatsElement = "AreaStats"
	modeStatsElement = "AreaModeStats"

	sidAttr               = "SID"
	totalStrawberriesAttr = "TotalStrawberries"
	completedAttr         = "Completed"
	deathsAttr            = "Deaths"
	heartGemAttr          = "HeartGem"
)

// Scalar leaf elements under the save root.
const (
	versionElement           = "Version"
	nameElement              = "Name"
	assistModeElement        = "AssistMode"
	cheatModeElement         = "CheatMode"
	variantModeElement       = "VariantMode"
	totalStrawberriesElement = "TotalStrawberries"
	totalGoldenElement       = "TotalGoldenStrawberries"
	totalDeathsElement       = "TotalDeaths"
	totalJumpsElement        = "TotalJumps"
	totalDashesElement       = "TotalDashes"
	totalWallJumpsElement    = "TotalWallJumps"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrIO is matched by every IOError.
var ErrIO = errors.New("save file could not be read")

// IOError reports that a save file could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read save: %v", e.Err)
	}
	return fmt.Sprintf("read save %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// ExtractFile opens the save file at path and extracts its summary.
func ExtractFile(path string) (*Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer file.Close()

	summary, err := NewExtractor().Extract(file)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, err
	}

	log.Debug().Str("path", path).Str("player", summary.PlayerName).Msg("Extracted save summary")
	return summary, nil
}

// Extract reads save markup from r with a fresh Extractor.
func Extract(r io.Reader) (*Summary, error) {
	return NewExtractor().Extract(r)
}

// Extractor rebuilds a Summary from the token stream of one save file.
//
// Sides are not labelled in the markup: the n-th AreaModeStats element inside
// an AreaStats element is side n. The extractor tracks that position in slot
// and collects sides in scratch until the area is complete.
type Extractor struct {
	summary Summary

	currentElement string
	currentArea    string

	slot    int
	scratch [SideCount]SideProgress
	pending bool
	full    bool

	strawberriesSeen bool

	text    strings.Builder
	hasText bool
}

// readRecorder remembers the first failure of the underlying reader so read
// errors can be told apart from markup errors reported by the decoder.
type readRecorder struct {
	r   io.Reader
	err error
}

func (rr *readRecorder) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF && rr.err == nil {
		rr.err = err
	}
	return n, err
}

// charsetReader decodes saves that declare a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// NewExtractor returns an Extractor ready for a single pass.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract consumes r and returns the summary. Only read failures are
// returned as errors; malformed markup ends the pass early and whatever was
// collected up to that point is returned.
func (e *Extractor) Extract(r io.Reader) (*Summary, error) {
	rec := &readRecorder{r: r}
	br := bufio.NewReader(rec)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, &IOError{Err: err}
		}
	}

	decoder := xml.NewDecoder(br)
	decoder.Strict = false
	decoder.CharsetReader = charsetReader

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if rec.err != nil {
				return nil, &IOError{Err: rec.err}
			}
			event := log.Warn().Err(err)
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				event = event.Int("line", syntaxErr.Line)
			}
			event.Msg("Malformed save markup, stopping early")
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e.handleStart(t)
		case xml.EndElement:
			e.handleEnd(t)
		case xml.CharData:
			e.text.Write(t)
			e.hasText = true
		}
	}

	if e.pending {
		e.flushArea()
	}

	summary := e.summary
	return &summary, nil
}

func (e *Extractor) handleStart(el xml.StartElement) {
	e.currentElement = el.Name.Local
	e.resetText()

	switch el.Name.Local {
	case areaStatsElement:
		e.beginArea(el.Attr)
	case modeStatsElement:
		e.addSide(el.Attr)
	}
}

func (e *Extractor) handleEnd(el xml.EndElement) {
	// Text split by comments or CDATA sections arrives in several tokens
	// and is routed once, when its element closes.
	if e.hasText {
		e.handleText(e.text.String())
	}
	e.resetText()
	e.currentElement = ""

	// Areas with fewer than three sides are stored as they are.
	if el.Name.Local == areaStatsElement && e.pending {
		e.flushArea()
	}
}

func (e *Extractor) beginArea(attrs []xml.Attr) {
	if e.pending {
		e.flushArea()
	}

	e.currentArea = ""
	for _, attr := range attrs {
		if attr.Name.Local == sidAttr {
			e.currentArea = attr.Value
		}
	}
	e.resetScratch()
	e.full = false
}

func (e *Extractor) addSide(attrs []xml.Attr) {
	if e.full {
		log.Warn().Str("area", e.currentArea).Msg("Ignoring extra mode stats beyond side C")
		return
	}

	side := &e.scratch[e.slot]
	for _, attr := range attrs {
		switch attr.Name.Local {
		case totalStrawberriesAttr:
			side.Strawberries = parseCount(attr.Value)
		case completedAttr:
			side.Completed = attr.Value == "true"
		case deathsAttr:
			side.Deaths = parseCount(attr.Value)
		case heartGemAttr:
			// Inverted relative to Completed. Kept as-is until checked
			// against real save data.
			side.HeartGem = attr.Value == "false"
		}
	}
	e.pending = true

	if e.slot == SideCount-1 {
		e.flushArea()
		e.full = true
		return
	}
	e.slot++
}

// flushArea stores the scratch sides under the current area and resets them.
func (e *Extractor) flushArea() {
	progress := AreaProgress{Sides: e.scratch}

	if area, ok := AreaForSID(e.currentArea); ok {
		e.summary.Progress.set(area, progress)
	} else {
		log.Debug().Str("sid", e.currentArea).Msg("Discarding progress for unrecognized area")
	}

	e.resetScratch()
}

func (e *Extractor) resetScratch() {
	e.scratch = [SideCount]SideProgress{}
	e.slot = 0
	e.pending = false
}

func (e *Extractor) resetText() {
	e.text.Reset()
	e.hasText = false
}

func (e *Extractor) handleText(text string) {
	s := &e.summary

	switch e.currentElement {
	case versionElement:
		s.Version = text
	case nameElement:
		s.PlayerName = text
	case assistModeElement:
		s.AssistMode = text != "false"
	case cheatModeElement:
		s.CheatMode = text != "false"
	case variantModeElement:
		s.VariantMode = text != "false"
	case totalStrawberriesElement:
		// Level set stats repeat this element further down; only the
		// first one is the save-wide total.
		if !e.strawberriesSeen {
			s.Strawberries = parseCount(text)
			e.strawberriesSeen = true
		}
	case totalGoldenElement:
		s.GoldenStrawberries = parseCount(text)
	case totalDeathsElement:
		s.Deaths = parseCount(text)
	case totalJumpsElement:
		s.Jumps = parseCount(text)
	case totalDashesElement:
		s.Dashes = parseCount(text)
	case totalWallJumpsElement:
		s.WallJumps = parseCount(text)
	}
}

// parseCount parses a non-negative counter, falling back to 0.
func parseCount(text string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}
