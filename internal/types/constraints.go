package types

// Constraints carry the caller's routing preferences. Tags are free-form
// but the scorer only weighs the ones it knows ("toll", "unpaved",
// "highway", "fastest", "shortest").
type Constraints struct {
	Avoid  []string `json:"avoid"`
	Prefer []string `json:"prefer"`
}

// HasAvoid reports whether the given tag appears in the avoid list.
func (c Constraints) HasAvoid(tag string) bool {
	for _, t := range c.Avoid {
		if t == tag {
			return true
		}
	}
	return false
}

// HasPrefer reports whether the given tag appears in the prefer list.
func (c Constraints) HasPrefer(tag string) bool {
	for _, t := range c.Prefer {
		if t == tag {
			return true
		}
	}
	return false
}
