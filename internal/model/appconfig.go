package model

// AppConfig holds application-wide preferences and default design inputs.
type AppConfig struct {
	// Defaults applied to new designs
	DefaultLength        float64         `json:"default_length"`
	DefaultWidth         float64         `json:"default_width"`
	DefaultHeight        float64         `json:"default_height"`
	DefaultBenchHeight   float64         `json:"default_bench_height"`
	DefaultRockDensity   float64         `json:"default_rock_density"`
	DefaultPWaveVelocity float64         `json:"default_p_wave_velocity"`
	DefaultWater         WaterCondition  `json:"default_water_condition"`
	DefaultCost          CostSensitivity `json:"default_cost_sensitivity"`

	// Visualization and export preferences
	Max3DHoles  int    `json:"max_3d_holes"`
	ShowLabels  bool   `json:"show_labels"`
	ReportTitle string `json:"report_title"`

	// Application preferences
	LogMode        string   `json:"log_mode"` // "dev" or "prod"
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultInputs().
func DefaultAppConfig() AppConfig {
	defaults := DefaultInputs()
	return AppConfig{
		DefaultLength:        defaults.Geometry.Length,
		DefaultWidth:         defaults.Geometry.Width,
		DefaultHeight:        defaults.Geometry.Height,
		DefaultBenchHeight:   defaults.Geometry.BenchHeight,
		DefaultRockDensity:   defaults.RockDensity,
		DefaultPWaveVelocity: defaults.PWaveVelocity,
		DefaultWater:         defaults.Water,
		DefaultCost:          defaults.Cost,
		Max3DHoles:           50,
		ShowLabels:           true,
		ReportTitle:          "Blasting Round Design",
		LogMode:              "dev",
		RecentProjects:       []string{},
	}
}

// ApplyToInputs copies the default values into a design's inputs.
// This is used when creating a new design so it inherits the user's saved defaults.
func (c AppConfig) ApplyToInputs(in *BlastDesignInputs) {
	in.Geometry.Length = c.DefaultLength
	in.Geometry.Width = c.DefaultWidth
	in.Geometry.Height = c.DefaultHeight
	in.Geometry.BenchHeight = c.DefaultBenchHeight
	in.RockDensity = c.DefaultRockDensity
	in.PWaveVelocity = c.DefaultPWaveVelocity
	in.Water = c.DefaultWater
	in.Cost = c.DefaultCost
}
