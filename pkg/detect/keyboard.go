package detect

import (
	"github.com/mailsift/mailsift/pkg/email"
	"github.com/mailsift/mailsift/pkg/refdata"
)

// Walk direction types
const (
	WalkHorizontal = "horizontal"
	WalkVertical   = "vertical"
	WalkDiagonal   = "diagonal"
)

// KeyboardResult describes a contiguous key walk
type KeyboardResult struct {
	Hit        bool    `json:"hit"`
	Type       string  `json:"type,omitempty"`
	Length     int     `json:"length"`
	Layout     string  `json:"layout,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Risk translates the result into a [0,1] contribution
func (r KeyboardResult) Risk() float64 {
	if !r.Hit {
		return 0
	}
	return clamp01(r.Confidence)
}

// keyPos is a key's grid coordinate on one layout
type keyPos struct {
	row, col int
}

// KeyboardDetector finds contiguous horizontal/vertical/diagonal key
// runs of at least four keys on any known layout.
type KeyboardDetector struct {
	// positions[layout][char] = grid coordinate
	positions map[string]map[byte]keyPos
	order     []string
}

const minWalkLength = 4

func NewKeyboardDetector() *KeyboardDetector {
	d := &KeyboardDetector{positions: make(map[string]map[byte]keyPos)}
	for _, layout := range refdata.KeyboardLayouts() {
		grid := make(map[byte]keyPos)
		for row, keys := range layout.Rows {
			for col := 0; col < len(keys); col++ {
				grid[keys[col]] = keyPos{row: row, col: col}
			}
		}
		d.positions[layout.Name] = grid
		d.order = append(d.order, layout.Name)
	}
	return d
}

func (d *KeyboardDetector) Name() string { return "keyboard_walk" }

func (d *KeyboardDetector) Detect(a *email.Address) Result {
	r := d.Analyze(a)
	return Result{Name: d.Name(), Hit: r.Hit, Confidence: r.Confidence, Risk: r.Risk()}
}

// Analyze returns the longest walk found on any layout
func (d *KeyboardDetector) Analyze(a *email.Address) KeyboardResult {
	local := a.CanonicalLocal
	if local == "" {
		local = a.Local
	}

	best := KeyboardResult{}
	for _, name := range d.order {
		if r := d.walkOn(name, local); r.Length > best.Length {
			best = r
		}
	}
	if best.Length >= minWalkLength {
		best.Hit = true
		conf := 0.5 + 0.1*float64(best.Length-minWalkLength)
		if conf > 0.95 {
			conf = 0.95
		}
		best.Confidence = conf
	}
	return best
}

// walkOn finds the longest contiguous adjacent-key run on one layout
func (d *KeyboardDetector) walkOn(layout, s string) KeyboardResult {
	grid := d.positions[layout]
	best := KeyboardResult{Layout: layout}

	runStart := 0
	for i := 1; i <= len(s); i++ {
		contiguous := false
		if i < len(s) {
			prev, okPrev := grid[s[i-1]]
			cur, okCur := grid[s[i]]
			contiguous = okPrev && okCur && adjacent(prev, cur)
		}
		if !contiguous {
			if length := i - runStart; length > best.Length {
				if _, ok := grid[s[runStart]]; ok && length >= 2 {
					best.Length = length
					best.Type = runType(grid, s[runStart:i])
				}
			}
			runStart = i
		}
	}
	return best
}

// adjacent allows one step in any of the eight grid directions
func adjacent(a, b keyPos) bool {
	dr, dc := a.row-b.row, a.col-b.col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr <= 1 && dc <= 1 && (dr+dc > 0)
}

// runType classifies a run by its dominant step direction
func runType(grid map[byte]keyPos, run string) string {
	horizontal, vertical, diagonal := 0, 0, 0
	for i := 1; i < len(run); i++ {
		a, b := grid[run[i-1]], grid[run[i]]
		switch {
		case a.row == b.row:
			horizontal++
		case a.col == b.col:
			vertical++
		default:
			diagonal++
		}
	}
	if horizontal >= vertical && horizontal >= diagonal {
		return WalkHorizontal
	}
	if vertical >= diagonal {
		return WalkVertical
	}
	return WalkDiagonal
}
