package charts

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Deekshith1804/gnss2/internal/models"
)

// ForecastPNG renders the 3-hour forecast series as a downloadable PNG.
func ForecastPNG(entries []models.ForecastEntry, w io.Writer) error {
	if len(entries) == 0 {
		return fmt.Errorf("no forecast entries to render")
	}

	xValues := make([]time.Time, len(entries))
	cloudValues := make([]float64, len(entries))
	rainValues := make([]float64, len(entries))
	for i, e := range entries {
		xValues[i] = e.Time
		cloudValues[i] = e.Cloud
		rainValues[i] = e.Rain
	}

	cloudSeries := chart.TimeSeries{
		Name: "Cloud Cover (%)",
		Style: chart.Style{
			StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255},
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: cloudValues,
	}

	rainSeries := chart.TimeSeries{
		Name: "Rain (mm/3h)",
		Style: chart.Style{
			StrokeColor: drawing.Color{R: 0, G: 153, B: 76, A: 255},
			StrokeWidth: 2,
		},
		YAxis:   chart.YAxisSecondary,
		XValues: xValues,
		YValues: rainValues,
	}

	graph := chart.Chart{
		Title: "Forecast Conditions",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  60,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("01-02 15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Cloud Cover (%)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 100,
			},
		},
		YAxisSecondary: chart.YAxis{
			Name: "Rain (mm)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{cloudSeries, rainSeries},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render forecast chart: %w", err)
	}
	return nil
}
