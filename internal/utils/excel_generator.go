package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"marsdash/internal/models"
)

const weatherSheet = "Weather"

// CreateWeatherWorkbook создает Excel файл с метеосводками марсохода
func CreateWeatherWorkbook(path string, reports []models.WeatherReport) error {
	f := excelize.NewFile()
	defer f.Close()

	// лист по умолчанию становится основным
	if err := f.SetSheetName("Sheet1", weatherSheet); err != nil {
		return err
	}

	headers := []string{"Sol", "Earth Date", "Ls (°)", "Season", "Min Temp (°C)", "Max Temp (°C)",
		"Pressure (Pa)", "Wind (m/s)", "Wind Dir", "UV", "Opacity"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(weatherSheet, cell, header)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(weatherSheet, "A1", "K1", style)
	}

	// встроенный формат 2: "0.00"
	numberStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	for rowIdx, r := range reports {
		row := rowIdx + 2

		values := []interface{}{
			r.Sol,
			r.EarthDate.Format("2006-01-02 15:04:05"),
			r.Ls,
			r.Season,
			r.MinTemp,
			r.MaxTemp,
			r.Pressure,
			r.WindSpeed,
			r.WindDirection,
			r.UVIndex,
			r.Opacity,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(weatherSheet, cell, &values); err != nil {
			return err
		}

		f.SetCellStyle(weatherSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("H%d", row), numberStyle)
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(weatherSheet, colName, colName, 16)
	}

	if len(reports) > 0 {
		last := len(reports) + 1

		// ночи холоднее -80°C синим, пыльные дни оранжевым
		coldRule := []excelize.ConditionalFormatOptions{
			{
				Type:     "cell",
				Criteria: "<",
				Value:    "-80",
				Format:   conditionalFill(f, "#CCE5FF"),
			},
		}
		if err := f.SetConditionalFormat(weatherSheet, fmt.Sprintf("E2:E%d", last), coldRule); err != nil {
			return err
		}

		dustRule := []excelize.ConditionalFormatOptions{
			{
				Type:     "cell",
				Criteria: "==",
				Value:    `"Dusty"`,
				Format:   conditionalFill(f, "#FFE0B2"),
			},
		}
		if err := f.SetConditionalFormat(weatherSheet, fmt.Sprintf("K2:K%d", last), dustRule); err != nil {
			return err
		}
	}

	if len(reports) > 1 {
		if err := addTemperatureChart(f, len(reports)); err != nil {
			return err
		}
	}

	if err := createInfoSheet(f, reports); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	return f.SaveAs(path)
}

func addTemperatureChart(f *excelize.File, rows int) error {
	last := rows + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", weatherSheet, last)

	return f.AddChart(weatherSheet, "M2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       "Min Temp",
				Categories: categories,
				Values:     fmt.Sprintf("%s!$E$2:$E$%d", weatherSheet, last),
			},
			{
				Name:       "Max Temp",
				Categories: categories,
				Values:     fmt.Sprintf("%s!$F$2:$F$%d", weatherSheet, last),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Temperature by Sol"},
		},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{
			Width:  640,
			Height: 400,
		},
	})
}

func createInfoSheet(f *excelize.File, reports []models.WeatherReport) error {
	if _, err := f.NewSheet("Info"); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Report Generated", time.Now().UTC().Format("2006-01-02 15:04:05")},
		{"Total Records", len(reports)},
	}

	if len(reports) > 0 {
		minSol, maxSol := reports[0].Sol, reports[0].Sol
		minTemp, maxTemp := reports[0].MinTemp, reports[0].MaxTemp
		for _, r := range reports {
			minSol = min(minSol, r.Sol)
			maxSol = max(maxSol, r.Sol)
			minTemp = min(minTemp, r.MinTemp)
			maxTemp = max(maxTemp, r.MaxTemp)
		}

		rows = append(rows,
			[]interface{}{"Rover", reports[0].Rover},
			[]interface{}{"Sol Range", fmt.Sprintf("%d - %d", minSol, maxSol)},
			[]interface{}{"Temperature Range", fmt.Sprintf("%.2f°C - %.2f°C", minTemp, maxTemp)},
		)
	}

	for i, row := range rows {
		if err := f.SetSheetRow("Info", fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	f.SetColWidth("Info", "A", "B", 24)

	return nil
}

// SaveAsJSON сохраняет данные в JSON файл
func SaveAsJSON(path string, data interface{}) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0644)
}

func conditionalFill(f *excelize.File, color string) *int {
	style, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}
