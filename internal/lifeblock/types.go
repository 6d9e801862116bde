package lifeblock

// OneOffBlock is an unavailable window on a single calendar date.
type OneOffBlock struct {
	ID    string `json:"id,omitempty"`
	Date  string `json:"date"`  // "2006-01-02"
	Start string `json:"start"` // "15:04"
	End   string `json:"end"`   // "15:04", exclusive
	Label string `json:"label,omitempty"`
}

// WeeklyBlock is an unavailable window recurring on a set of weekdays.
type WeeklyBlock struct {
	ID    string   `json:"id,omitempty"`
	Days  []string `json:"days"`  // weekday slugs: "mon".."sun"
	Start string   `json:"start"` // "15:04"
	End   string   `json:"end"`   // "15:04", exclusive
	Label string   `json:"label,omitempty"`
}

// State is the full set of user-declared life blocks.
type State struct {
	OneOff []OneOffBlock `json:"one_off"`
	Weekly []WeeklyBlock `json:"weekly"`
}
