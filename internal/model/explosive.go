package model

import (
	"fmt"
	"strings"
)

// ExplosiveType is one of the bulk explosive families supported by the designer.
type ExplosiveType int

const (
	ANFO ExplosiveType = iota
	HeavyANFO
	Slurry
	Emulsion
)

// ExplosiveTypes lists every explosive type in display order.
var ExplosiveTypes = []ExplosiveType{ANFO, HeavyANFO, Slurry, Emulsion}

func (e ExplosiveType) String() string {
	switch e {
	case HeavyANFO:
		return "Heavy ANFO"
	case Slurry:
		return "Slurry"
	case Emulsion:
		return "Emulsion"
	default:
		return "ANFO"
	}
}

// Density returns the nominal density in g/cm³ (midpoint of the product range).
func (e ExplosiveType) Density() float64 {
	switch e {
	case HeavyANFO:
		return 1.225
	case Slurry:
		return 1.175
	case Emulsion:
		return 1.3
	default:
		return 0.85
	}
}

// DensityKgM3 returns the nominal density in kg/m³.
func (e ExplosiveType) DensityKgM3() float64 {
	return e.Density() * 1000
}

// ExplosiveProperties is the decision-matrix row for an explosive type.
type ExplosiveProperties struct {
	WaterResistance string
	DensityRange    string // g/cm³
	VODRange        string // m/s
	RelativeCost    string
	BestFor         string
}

// Properties returns the selection-matrix data for the explosive type.
func (e ExplosiveType) Properties() ExplosiveProperties {
	switch e {
	case HeavyANFO:
		return ExplosiveProperties{"Low to Moderate", "1.15-1.30", "5000-5335", "Medium", "Damp to wet, medium rock"}
	case Slurry:
		return ExplosiveProperties{"Good", "1.0-1.35", "4000-5800", "Medium-High", "Wet holes, varied rock"}
	case Emulsion:
		return ExplosiveProperties{"Excellent", "1.15-1.45", "4400-5600", "High", "Very wet holes, hard rock"}
	default:
		return ExplosiveProperties{"None", "0.8-0.9", "2500-3500", "Low", "Dry holes, soft rock"}
	}
}

// ParseExplosiveType accepts the display name or a compact form ("heavy-anfo").
func ParseExplosiveType(s string) (ExplosiveType, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch n {
	case "anfo":
		return ANFO, nil
	case "heavyanfo":
		return HeavyANFO, nil
	case "slurry":
		return Slurry, nil
	case "emulsion":
		return Emulsion, nil
	}
	return ANFO, fmt.Errorf("unknown explosive type %q", s)
}

func (e ExplosiveType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *ExplosiveType) UnmarshalText(b []byte) error {
	v, err := ParseExplosiveType(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// WaterCondition describes water present in the blast holes.
type WaterCondition int

const (
	Dry WaterCondition = iota
	Damp
	Wet
	VeryWet
)

func (w WaterCondition) String() string {
	switch w {
	case Damp:
		return "Damp"
	case Wet:
		return "Wet"
	case VeryWet:
		return "Very Wet"
	default:
		return "Dry"
	}
}

// ParseWaterCondition accepts "dry", "damp", "wet" or "very wet".
func ParseWaterCondition(s string) (WaterCondition, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch n {
	case "dry":
		return Dry, nil
	case "damp":
		return Damp, nil
	case "wet":
		return Wet, nil
	case "verywet":
		return VeryWet, nil
	}
	return Dry, fmt.Errorf("unknown water condition %q", s)
}

func (w WaterCondition) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *WaterCondition) UnmarshalText(b []byte) error {
	v, err := ParseWaterCondition(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// CostSensitivity weights explosive cost against performance.
type CostSensitivity int

const (
	CostMedium      CostSensitivity = iota
	CostPerformance                 // Low sensitivity, performance priority
	CostPriority                    // High sensitivity, cost priority
)

func (c CostSensitivity) String() string {
	switch c {
	case CostPerformance:
		return "Low (Performance Priority)"
	case CostPriority:
		return "High (Cost Priority)"
	default:
		return "Medium"
	}
}

// ParseCostSensitivity accepts "low", "medium", "high" or the full labels.
func ParseCostSensitivity(s string) (CostSensitivity, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch {
	case n == "low" || strings.HasPrefix(n, "low ") || n == "performance":
		return CostPerformance, nil
	case n == "" || n == "medium":
		return CostMedium, nil
	case n == "high" || strings.HasPrefix(n, "high ") || n == "cost":
		return CostPriority, nil
	}
	return CostMedium, fmt.Errorf("unknown cost sensitivity %q", s)
}

func (c CostSensitivity) MarshalText() ([]byte, error) {
	switch c {
	case CostPerformance:
		return []byte("low"), nil
	case CostPriority:
		return []byte("high"), nil
	default:
		return []byte("medium"), nil
	}
}

func (c *CostSensitivity) UnmarshalText(b []byte) error {
	v, err := ParseCostSensitivity(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// RockHardness is the joint P-wave/density rock class.
type RockHardness int

const (
	VerySoft RockHardness = iota
	Soft
	Medium
	Hard
	VeryHard
)

func (r RockHardness) String() string {
	switch r {
	case VerySoft:
		return "Very Soft"
	case Soft:
		return "Soft"
	case Hard:
		return "Hard"
	case VeryHard:
		return "Very Hard"
	default:
		return "Medium"
	}
}

// IsHard reports Hard or VeryHard rock.
func (r RockHardness) IsHard() bool {
	return r == Hard || r == VeryHard
}

// RockClassification is the result of classifying a rock mass. UCSRange,
// Strength and Examples are display-only.
type RockClassification struct {
	Hardness RockHardness `json:"hardness"`
	UCSRange string       `json:"ucs_range"`
	Strength string       `json:"strength"`
	Examples string       `json:"examples"`
}
