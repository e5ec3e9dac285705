// Package charts renders the dashboard's embeddable chart fragments and
// the downloadable PNG of the forecast series.
package charts

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Deekshith1804/gnss2/internal/models"
)

const timeLabel = "01-02 15:04"

// KpTrendHTML builds the planetary Kp history line chart as an embeddable
// HTML fragment.
func KpTrendHTML(history []models.KpEntry) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Planetary Kp Index",
			Subtitle: "Recent geomagnetic activity (NOAA SWPC)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Kp",
			Max:  9,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	xAxis := make([]string, len(history))
	kpData := make([]opts.LineData, len(history))
	for i, e := range history {
		xAxis[i] = e.Time.Format(timeLabel)
		kpData[i] = opts.LineData{Value: e.Kp}
	}

	line.SetXAxis(xAxis).
		AddSeries("Kp", kpData).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ForecastHTML builds the cloud/rain forecast chart as an embeddable HTML
// fragment.
func ForecastHTML(entries []models.ForecastEntry) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Forecast Conditions",
			Subtitle: "3-hour cloud cover and rain accumulation",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	xAxis := make([]string, len(entries))
	cloudData := make([]opts.LineData, len(entries))
	rainData := make([]opts.LineData, len(entries))
	for i, e := range entries {
		xAxis[i] = e.Time.Format(timeLabel)
		cloudData[i] = opts.LineData{Value: e.Cloud}
		rainData[i] = opts.LineData{Value: e.Rain}
	}

	line.SetXAxis(xAxis).
		AddSeries("Cloud %", cloudData).
		AddSeries("Rain mm", rainData).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
