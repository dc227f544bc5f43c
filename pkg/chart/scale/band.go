package scale

// Band is an ordinal scale that assigns each domain value an equal-width band.
//
// Padding is applied both between bands and before the first / after the last
// band, as a fraction of the step. Leftover space is split evenly on both
// ends.
type Band struct {
	Domain  []string   `json:"domain"`
	Range   [2]float64 `json:"range"`
	Padding float64    `json:"padding"`
}

// NewBand returns a band scale over domain. Duplicate values keep their first
// position.
func NewBand(domain []string, r0, r1, padding float64) Band {
	seen := make(map[string]struct{}, len(domain))
	uniq := make([]string, 0, len(domain))
	for _, v := range domain {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
	}
	return Band{Domain: uniq, Range: [2]float64{r0, r1}, Padding: padding}
}

// Step returns the distance between the starts of adjacent bands.
func (s Band) Step() float64 {
	n := float64(len(s.Domain))
	return (s.Range[1] - s.Range[0]) / max(1, n-s.Padding+2*s.Padding)
}

// Bandwidth returns the thickness of each band.
func (s Band) Bandwidth() float64 {
	return s.Step() * (1 - s.Padding)
}

// Map returns the start of the band for v.
func (s Band) Map(v string) (float64, bool) {
	for i, d := range s.Domain {
		if d == v {
			return s.offset() + s.Step()*float64(i), true
		}
	}
	return 0, false
}

// Center returns the middle of the band for v.
func (s Band) Center(v string) (float64, bool) {
	y, ok := s.Map(v)
	return y + s.Bandwidth()/2, ok
}

func (s Band) offset() float64 {
	n := float64(len(s.Domain))
	used := s.Step() * (n - s.Padding)
	return s.Range[0] + (s.Range[1]-s.Range[0]-used)*0.5
}
