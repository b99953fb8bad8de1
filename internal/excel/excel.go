package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/schedule"
	"github.com/xuri/excelize/v2"
)

const (
	masterSheet = "Master Schedule"
	byeMarker   = "BYE" // team sheets only
)

// Generate creates an Excel workbook with the master schedule and per-team sheets.
func Generate(cfg *config.Config, season schedule.Season) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")
	f.SetSheetName("Sheet1", masterSheet)

	if err := writeMasterSheet(f, season); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	if err := writeTeamSheets(f, cfg.Roster(), season); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	return f, nil
}

// ReadFile opens a workbook and reads its master schedule.
func ReadFile(path string) (schedule.Season, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadSeason(f)
}

// ReadSeason parses the master sheet back into a season. Teams are read by
// identity only; rows without a numeric week are skipped, and a row with one
// empty side is a bye for the other. Any non-empty cell is an identity.
func ReadSeason(f *excelize.File) (schedule.Season, error) {
	rows, err := f.GetRows(masterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", masterSheet, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", masterSheet)
	}

	season := make(schedule.Season)
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		week, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || week < 1 {
			continue
		}

		home, away := cell(row, 1), cell(row, 2)
		var p schedule.Pairing
		switch {
		case home == "" && away == "":
			continue
		case home == "":
			p = schedule.Bye{Team: schedule.Team{ID: away}}
		case away == "":
			p = schedule.Bye{Team: schedule.Team{ID: home}}
		default:
			p = schedule.Match{Home: schedule.Team{ID: home}, Away: schedule.Team{ID: away}}
		}
		season[week] = append(season[week], p)
	}
	return season, nil
}

// Save writes a fresh workbook for the season to path.
func Save(cfg *config.Config, season schedule.Season, path string) error {
	f, err := Generate(cfg, season)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

// UpdateTeamSheets rebuilds the per-team sheets from the master schedule,
// leaving the master sheet untouched.
func UpdateTeamSheets(path string, cfg *config.Config) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	season, err := ReadSeason(f)
	if err != nil {
		return err
	}

	for _, name := range f.GetSheetList() {
		if name != masterSheet {
			f.DeleteSheet(name)
		}
	}

	if err := writeTeamSheets(f, cfg.Roster(), season); err != nil {
		return fmt.Errorf("writing team sheets: %w", err)
	}
	return f.Save()
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
}

func writeMasterSheet(f *excelize.File, season schedule.Season) error {
	sheet := masterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Week", "Home", "Away"}
	writeHeaders(f, sheet, headers)

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 2
	for _, wk := range season.Weeks() {
		for _, p := range season[wk] {
			var home, away string
			switch p := p.(type) {
			case schedule.Match:
				home, away = p.Home.ID, p.Away.ID
			case schedule.Bye:
				home = p.Team.ID
			default:
				continue
			}
			f.SetCellValue(sheet, cellRef(1, row), wk)
			f.SetCellValue(sheet, cellRef(2, row), home)
			f.SetCellValue(sheet, cellRef(3, row), away)
			if cellStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
			}
			row++
		}
	}

	// Set column widths (sized for Arial 16)
	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "C", 48)

	// Conditional formatting: bye rows get light yellow
	if row > 2 {
		yellowFill, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFF2CC"}},
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})
		f.SetConditionalFormat(sheet, fmt.Sprintf("A2:C%d", row-1), []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: `$C2=""`,
				Format:   &yellowFill,
			},
		})
	}

	return nil
}

func writeTeamSheets(f *excelize.File, roster []schedule.Team, season schedule.Season) error {
	names := make(map[string]string, len(roster))
	for _, t := range roster {
		names[t.ID] = t.DisplayName()
	}
	display := func(t schedule.Team) string {
		if name, ok := names[t.Key()]; ok {
			return name
		}
		return t.ID
	}

	used := map[string]bool{strings.ToLower(masterSheet): true}
	for _, team := range roster {
		sheet := sheetName(team.DisplayName(), used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet for %s: %w", team.ID, err)
		}

		headers := []string{"Week", "Opponent", "Home/Away"}
		writeHeaders(f, sheet, headers)

		cellStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})

		row := 2
		for _, wk := range season.Weeks() {
			for _, p := range season[wk] {
				var opponent, side string
				switch p := p.(type) {
				case schedule.Match:
					switch team.ID {
					case p.Home.Key():
						opponent, side = display(p.Away), "Home"
					case p.Away.Key():
						opponent, side = display(p.Home), "Away"
					default:
						continue
					}
				case schedule.Bye:
					if p.Team.Key() != team.ID {
						continue
					}
					opponent, side = byeMarker, ""
				default:
					continue
				}
				f.SetCellValue(sheet, cellRef(1, row), wk)
				f.SetCellValue(sheet, cellRef(2, row), opponent)
				f.SetCellValue(sheet, cellRef(3, row), side)
				if cellStyle != 0 {
					f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
				}
				row++
			}
		}

		// Set column widths (sized for Arial 16)
		widths := map[string]float64{"A": 10, "B": 28, "C": 14}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

// sheetName makes a valid, unused worksheet name from a team's display name.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(name, "' "))
	if clean == "" {
		clean = "Team"
	}
	clean = truncate(clean, 31)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(clean, 31-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
