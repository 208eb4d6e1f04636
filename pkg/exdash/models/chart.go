package models

// Channel binds one dataset column to a visual channel of a chart.
type Channel struct {
	// Column is the dataset column feeding the channel.
	Column string `json:"column" yaml:"column"`
	// Values are the column's cells in row order.
	Values []Value `json:"values" yaml:"values"`
}

// ChartDescriptor is a renderer-neutral description of a chart.
// Pie charts use Names and Values; every other family uses X, Y and Color.
type ChartDescriptor struct {
	// Family is the chart family (e.g., "Bar Chart").
	Family string `json:"family" yaml:"family"`
	// Title is "<family> - <x> vs <y>".
	Title string `json:"title" yaml:"title"`
	// X feeds the horizontal axis.
	X *Channel `json:"x,omitempty" yaml:"x,omitempty"`
	// Y feeds the vertical axis (nil when no y column was chosen).
	Y *Channel `json:"y,omitempty" yaml:"y,omitempty"`
	// Color splits the data into series (optional).
	Color *Channel `json:"color,omitempty" yaml:"color,omitempty"`
	// Names labels pie slices.
	Names *Channel `json:"names,omitempty" yaml:"names,omitempty"`
	// Values sizes pie slices (nil means one unit per row).
	Values *Channel `json:"values,omitempty" yaml:"values,omitempty"`
}

// IsPie reports whether the descriptor uses the names/values channels.
func (c *ChartDescriptor) IsPie() bool {
	return c.Names != nil
}
