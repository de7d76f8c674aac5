package layout

import "maps"

// Profile holds the spacing and colors for one visualization.
type Profile struct {
	VerticalSpacing   float64           `yaml:"vertical_spacing" json:"vertical_spacing"`
	HorizontalSpacing float64           `yaml:"horizontal_spacing" json:"horizontal_spacing"`
	BaseOffset        float64           `yaml:"base_offset" json:"base_offset"`
	CenterOffset      float64           `yaml:"center_offset" json:"center_offset"`
	EdgeColor         string            `yaml:"edge_color" json:"edge_color"`
	DefaultColor      string            `yaml:"default_color" json:"default_color"`
	Palette           map[string]string `yaml:"palette" json:"palette,omitempty"` // category → fill
}

// Color returns the fill for a node category.
func (p Profile) Color(category string) string {
	if c, ok := p.Palette[category]; ok {
		return c
	}
	return p.DefaultColor
}

// over fills every zero field of p from base. Palette entries of p are laid
// over those of base.
func (p Profile) over(base Profile) Profile {
	if p.VerticalSpacing == 0 {
		p.VerticalSpacing = base.VerticalSpacing
	}
	if p.HorizontalSpacing == 0 {
		p.HorizontalSpacing = base.HorizontalSpacing
	}
	if p.BaseOffset == 0 {
		p.BaseOffset = base.BaseOffset
	}
	if p.CenterOffset == 0 {
		p.CenterOffset = base.CenterOffset
	}
	if p.EdgeColor == "" {
		p.EdgeColor = base.EdgeColor
	}
	if p.DefaultColor == "" {
		p.DefaultColor = base.DefaultColor
	}
	palette := make(map[string]string, len(base.Palette)+len(p.Palette))
	maps.Copy(palette, base.Palette)
	maps.Copy(palette, p.Palette)
	p.Palette = palette
	return p
}

// Views known to the dashboard.
const (
	ViewTeams = "teams"
	ViewJobs  = "jobs"
	ViewForms = "forms"
)

// DefaultProfiles returns the built-in profile per view.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		ViewTeams: {
			VerticalSpacing:   200,
			HorizontalSpacing: 300,
			BaseOffset:        100,
			CenterOffset:      400,
			EdgeColor:         "#3b82f6",
			DefaultColor:      "#6b7280",
			Palette: map[string]string{
				"Executive":   "#ef4444",
				"Technology":  "#3b82f6",
				"Engineering": "#10b981",
				"Marketing":   "#f59e0b",
			},
		},
		ViewJobs: {
			VerticalSpacing:   220,
			HorizontalSpacing: 350,
			BaseOffset:        100,
			CenterOffset:      400,
			EdgeColor:         "#10b981",
			DefaultColor:      "#6b7280",
			Palette: map[string]string{
				"C-Level":     "#ef4444",
				"Manager":     "#f59e0b",
				"Senior":      "#3b82f6",
				"Mid-Level":   "#10b981",
				"Entry-Level": "#6b7280",
			},
		},
		ViewForms: {
			VerticalSpacing:   200,
			HorizontalSpacing: 320,
			BaseOffset:        100,
			CenterOffset:      400,
			EdgeColor:         "#8b5cf6",
			DefaultColor:      "#8b5cf6",
			Palette: map[string]string{
				"Category": "#6b7280",
				"HR":       "#ef4444",
				"Customer": "#3b82f6",
				"Project":  "#10b981",
			},
		},
	}
}
