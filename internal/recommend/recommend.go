// Package recommend maps rock and site conditions to a rock class, an
// explosive type and a drill pattern using fixed decision tables.
//
// Inputs outside the documented ranges are not rejected; the tables simply
// fall through to their last band.
package recommend

import "github.com/piwi3910/blastplan/internal/model"

// rockBand is one row of the classification ladder. A band matches when the
// P-wave velocity AND the density are both below its limits.
type rockBand struct {
	maxPWave   float64 // km/s, exclusive
	maxDensity float64 // g/cm³, exclusive
	class      model.RockClassification
}

var rockLadder = []rockBand{
	{2.5, 2.2, model.RockClassification{
		Hardness: model.VerySoft,
		UCSRange: "<25 MPa",
		Strength: "Very weak to weak",
		Examples: "Highly weathered rocks, soft sandstone",
	}},
	{3.5, 2.5, model.RockClassification{
		Hardness: model.Soft,
		UCSRange: "25-50 MPa",
		Strength: "Weak to medium strong",
		Examples: "Sandstone, shale, coal",
	}},
	{4.5, 2.7, model.RockClassification{
		Hardness: model.Medium,
		UCSRange: "50-100 MPa",
		Strength: "Medium strong to strong",
		Examples: "Limestone, dolomite",
	}},
	{5.5, 2.9, model.RockClassification{
		Hardness: model.Hard,
		UCSRange: "100-200 MPa",
		Strength: "Strong to very strong",
		Examples: "Granite, gabbro, basalt",
	}},
}

var veryHardRock = model.RockClassification{
	Hardness: model.VeryHard,
	UCSRange: ">200 MPa",
	Strength: "Very strong to extremely strong",
	Examples: "Quartzite, dense basalt",
}

// ClassifyRock returns the first band of the ladder where both the P-wave
// velocity (km/s) and the rock density (g/cm³) are below the band limits,
// or VeryHard when none matches.
func ClassifyRock(pWaveVelocity, rockDensity float64) model.RockClassification {
	for _, b := range rockLadder {
		if pWaveVelocity < b.maxPWave && rockDensity < b.maxDensity {
			return b.class
		}
	}
	return veryHardRock
}

// ClassificationMatrix returns every rock class in ladder order with the
// P-wave and density bands that define it, for reports.
func ClassificationMatrix() []MatrixRow {
	rows := make([]MatrixRow, 0, len(rockLadder)+1)
	lowP, lowD := 0.0, 0.0
	for _, b := range rockLadder {
		rows = append(rows, MatrixRow{
			Class:      b.class,
			PWaveRange: bandLabel(lowP, b.maxPWave),
			Density:    bandLabel(lowD, b.maxDensity),
		})
		lowP, lowD = b.maxPWave, b.maxDensity
	}
	rows = append(rows, MatrixRow{
		Class:      veryHardRock,
		PWaveRange: bandLabel(lowP, 0),
		Density:    bandLabel(lowD, 0),
	})
	return rows
}

// MatrixRow is one line of the rock classification matrix.
type MatrixRow struct {
	Class      model.RockClassification
	PWaveRange string // km/s
	Density    string // g/cm³
}
