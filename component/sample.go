package component

// Location records where a sample was taken. It is populated only for
// markers constructed in full display mode.
type Location struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Sample is one aggregated measurement handed to a [Registry] when a
// marker or timer completes.
type Sample struct {
	Label        string    `json:"label"`
	Component    Name      `json:"component"`
	Value        float64   `json:"value"`
	Units        string    `json:"units"`
	DisplayUnits string    `json:"display_units"`
	Laps         int       `json:"laps"`
	Location     *Location `json:"location,omitempty"`
}

// Results maps each component name to the samples collected for it, in
// submission order.
type Results map[Name][]Sample
