// Package importer reads blast design inputs from CSV and Excel batch
// sheets, YAML design files and DXF bench outlines. Batch import supports
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a batch import.
type ImportResult struct {
	Designs  []model.BlastDesignInputs
	Errors   []string
	Warnings []string
}

// Column roles of a batch sheet.
const (
	colName = iota
	colLength
	colWidth
	colHeight
	colBenchHeight
	colDiameter
	colRockDensity
	colPWave
	colWater
	colCost
	colExplosive
	colPattern
	colVolume
	colMaxHoles
	numColumns
)

// ColumnMapping maps each column role to its index in the data, or -1.
type ColumnMapping [numColumns]int

// headerAliases maps column roles to their accepted header names (all lowercase).
var headerAliases = map[int][]string{
	colName:        {"name", "label", "design", "round", "blast", "description"},
	colLength:      {"length", "len", "l", "length (m)"},
	colWidth:       {"width", "w", "width (m)"},
	colHeight:      {"height", "h", "block height", "height (m)"},
	colBenchHeight: {"bench height", "bench_height", "bench", "benchheight", "bench height (m)"},
	colDiameter:    {"diameter", "hole diameter", "hole_diameter", "diameter (mm)", "d", "bit"},
	colRockDensity: {"rock density", "rock_density", "density", "density (g/cm3)"},
	colPWave:       {"p-wave", "p wave", "p_wave", "pwave", "p-wave velocity", "p_wave_velocity", "velocity"},
	colWater:       {"water", "water condition", "water_condition"},
	colCost:        {"cost", "cost sensitivity", "cost_sensitivity"},
	colExplosive:   {"explosive", "explosive type", "explosive_type"},
	colPattern:     {"pattern", "pattern type", "drill pattern"},
	colVolume:      {"volume", "blast volume", "blast_volume", "volume (m3)"},
	colMaxHoles:    {"max holes", "max_holes", "hole limit"},
}

// positionalMapping is used when the first row is not a header:
// name, length, width, height, bench height, diameter.
var positionalMapping = ColumnMapping{0, 1, 2, 3, 4, 5, -1, -1, -1, -1, -1, -1, -1, -1}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	var mapping ColumnMapping
	for i := range mapping {
		mapping[i] = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && mapping[role] == -1 {
					mapping[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowParser accumulates the first error while reading one row.
type rowParser struct {
	row      []string
	mapping  ColumnMapping
	rowLabel string
	err      string
}

func (p *rowParser) float(role int, name string, required bool) (float64, bool) {
	s := getCell(p.row, p.mapping[role])
	if s == "" {
		if required && p.err == "" {
			p.err = fmt.Sprintf("%s: Missing %s value", p.rowLabel, name)
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if p.err == "" {
			p.err = fmt.Sprintf("%s: Invalid %s '%s'", p.rowLabel, name, s)
		}
		return 0, false
	}
	return v, true
}

// parseRow builds design inputs from a row. Omitted optional columns keep
// the defaults; an empty explosive or pattern cell means "recommended".
// Returns the inputs, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, designCount int) (model.BlastDesignInputs, string, []string) {
	in := model.DefaultInputs()
	in.Name = getCell(row, mapping[colName])
	if in.Name == "" {
		in.Name = fmt.Sprintf("Design %d", designCount+1)
	}

	p := &rowParser{row: row, mapping: mapping, rowLabel: rowLabel}
	length, _ := p.float(colLength, "length", true)
	width, _ := p.float(colWidth, "width", true)
	bench, _ := p.float(colBenchHeight, "bench height", true)
	height, hasHeight := p.float(colHeight, "height", false)
	diameter, _ := p.float(colDiameter, "diameter", false)
	density, hasDensity := p.float(colRockDensity, "rock density", false)
	pwave, hasPWave := p.float(colPWave, "p-wave velocity", false)
	volume, hasVolume := p.float(colVolume, "volume", false)
	maxHoles, _ := p.float(colMaxHoles, "max holes", false)
	if p.err != "" {
		return model.BlastDesignInputs{}, p.err, nil
	}
	if length <= 0 || width <= 0 || bench <= 0 {
		return model.BlastDesignInputs{}, fmt.Sprintf("%s: Length, width, and bench height must be positive", rowLabel), nil
	}

	if !hasHeight {
		height = max(bench, in.Geometry.Height)
	}
	in.Geometry = model.BenchGeometry{Length: length, Width: width, Height: height, BenchHeight: bench}
	in.HoleDiameterMM = diameter
	if hasDensity {
		in.RockDensity = density
	}
	if hasPWave {
		in.PWaveVelocity = pwave
	}
	if hasVolume {
		in.VolumeMode = model.VolumeManual
		in.ManualVolume = volume
	}
	in.MaxHoles = int(maxHoles)

	var warnings []string
	if s := getCell(row, mapping[colWater]); s != "" {
		w, err := model.ParseWaterCondition(s)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown water condition '%s', defaulting to %s", rowLabel, s, in.Water))
		} else {
			in.Water = w
		}
	}
	if s := getCell(row, mapping[colCost]); s != "" {
		c, err := model.ParseCostSensitivity(s)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown cost sensitivity '%s', defaulting to %s", rowLabel, s, in.Cost))
		} else {
			in.Cost = c
		}
	}
	if s := getCell(row, mapping[colExplosive]); s != "" && !isAuto(s) {
		e, err := model.ParseExplosiveType(s)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown explosive '%s', using recommendation", rowLabel, s))
		} else {
			in.AutoExplosive = false
			in.Explosive = e
		}
	}
	if s := getCell(row, mapping[colPattern]); s != "" && !isAuto(s) {
		k, err := model.ParsePatternKind(s)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown pattern '%s', using recommendation", rowLabel, s))
		} else {
			in.AutoPattern = false
			in.Pattern = k
		}
	}

	normalized, notes := in.Normalize()
	for _, n := range notes {
		warnings = append(warnings, fmt.Sprintf("%s: %s", rowLabel, n))
	}
	return normalized, "", warnings
}

func isAuto(s string) bool {
	switch strings.ToLower(s) {
	case "auto", "recommended", "-":
		return true
	}
	return false
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports designs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports designs from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports designs from the first sheet of an Excel (.xlsx) file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping[colLength] == -1 {
			missing = append(missing, "Length")
		}
		if mapping[colWidth] == -1 {
			missing = append(missing, "Width")
		}
		if mapping[colBenchHeight] == -1 {
			missing = append(missing, "Bench Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		design, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Designs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Designs = append(result.Designs, design)
	}

	return result
}
