package detect

import (
	"regexp"
	"strconv"
	"time"

	"github.com/mailsift/mailsift/pkg/email"
)

// Date shape tags
const (
	ShapeYear      = "year"       // trailing 4-digit year
	ShapeShortYear = "short_year" // trailing 2-digit year
	ShapeMonthYear = "month_year" // textual or numeric month + year
	ShapeFullDate  = "full_date"  // 8-digit yyyymmdd
	ShapeLeadYear  = "lead_year"  // leading 4-digit year
)

// DatedResult describes a date-stamped local part
type DatedResult struct {
	Hit        bool    `json:"hit"`
	Confidence float64 `json:"confidence"`
	Year       int     `json:"year,omitempty"`
	Shape      string  `json:"shape,omitempty"`
}

// Risk translates the result into a [0,1] contribution
func (r DatedResult) Risk() float64 {
	if !r.Hit {
		return 0
	}
	return clamp01(r.Confidence * 0.8)
}

// DatedDetector recognises five date shapes in local parts. The parsed
// year must fall within currentYear +/- 5 (+/- 3 for 2-digit years).
type DatedDetector struct {
	fullDate  *regexp.Regexp
	monthYear *regexp.Regexp
	trailYear *regexp.Regexp
	leadYear  *regexp.Regexp
	shortYear *regexp.Regexp
}

func NewDatedDetector() *DatedDetector {
	months := `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|` +
		`jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	return &DatedDetector{
		fullDate:  regexp.MustCompile(`((?:19|20)\d{2})(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])$`),
		monthYear: regexp.MustCompile(`(?:` + months + `|0[1-9]|1[0-2])[._-]?((?:19|20)?\d{2})$`),
		trailYear: regexp.MustCompile(`((?:19|20)\d{2})$`),
		leadYear:  regexp.MustCompile(`^((?:19|20)\d{2})`),
		shortYear: regexp.MustCompile(`[a-z][._-]?(\d{2})$`),
	}
}

func (d *DatedDetector) Name() string { return "dated" }

func (d *DatedDetector) Detect(a *email.Address) Result {
	r := d.AnalyzeAt(a, time.Now())
	return Result{Name: d.Name(), Hit: r.Hit, Confidence: r.Confidence, Risk: r.Risk()}
}

// AnalyzeAt evaluates the shapes in priority order against now's year
func (d *DatedDetector) AnalyzeAt(a *email.Address, now time.Time) DatedResult {
	local := a.CanonicalLocal
	if local == "" {
		local = a.Local
	}
	currentYear := now.Year()

	if m := d.fullDate.FindStringSubmatch(local); m != nil {
		year, _ := strconv.Atoi(m[1])
		if within(year, currentYear, 5) {
			return DatedResult{Hit: true, Confidence: scaleByYear(0.9, year, currentYear), Year: year, Shape: ShapeFullDate}
		}
	}

	if m := d.monthYear.FindStringSubmatch(local); m != nil {
		year := expandYear(m[1], currentYear)
		if within(year, currentYear, 5) {
			return DatedResult{Hit: true, Confidence: scaleByYear(0.8, year, currentYear), Year: year, Shape: ShapeMonthYear}
		}
	}

	if m := d.trailYear.FindStringSubmatch(local); m != nil && len(local) > 4 {
		year, _ := strconv.Atoi(m[1])
		if within(year, currentYear, 5) {
			return DatedResult{Hit: true, Confidence: scaleByYear(0.7, year, currentYear), Year: year, Shape: ShapeYear}
		}
	}

	if m := d.shortYear.FindStringSubmatch(local); m != nil {
		year := expandYear(m[1], currentYear)
		if within(year, currentYear, 3) {
			return DatedResult{Hit: true, Confidence: scaleByYear(0.5, year, currentYear), Year: year, Shape: ShapeShortYear}
		}
	}

	if m := d.leadYear.FindStringSubmatch(local); m != nil && len(local) > 4 {
		year, _ := strconv.Atoi(m[1])
		if within(year, currentYear, 5) {
			// leading placement is a weaker signal than a trailing stamp
			return DatedResult{Hit: true, Confidence: 0.5, Year: year, Shape: ShapeLeadYear}
		}
	}

	return DatedResult{}
}

func within(year, current, window int) bool {
	return year >= current-window && year <= current+window
}

// scaleByYear bumps confidence when the stamp is this or next year
func scaleByYear(base float64, year, current int) float64 {
	if year == current || year == current+1 {
		return clamp01(base + 0.1)
	}
	return base
}

// expandYear maps a 2-digit year into the century closest to current
func expandYear(s string, current int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if n >= 100 {
		return n
	}
	year := 2000 + n
	if year > current+10 {
		year -= 100
	}
	return year
}
