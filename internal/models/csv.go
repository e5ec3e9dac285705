package models

import (
	"encoding/csv"
	"io"
	"strconv"
)

// PopulationCSVFilename is the fixed download filename for the simulated
// population export.
const PopulationCSVFilename = "gnss_outages.csv"

// WriteCSV writes the population table as comma-separated values with a
// header row, matching the on-screen table column for column.
func (p *SimulatedPopulation) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"lat", "lon", "cloud", "rain", "tec", "kp", "out_ml"}); err != nil {
		return err
	}
	for _, s := range p.Samples {
		rec := []string{
			strconv.FormatFloat(s.Point.Lat, 'f', 6, 64),
			strconv.FormatFloat(s.Point.Lon, 'f', 6, 64),
			strconv.FormatFloat(s.Sample.Cloud, 'f', 4, 64),
			strconv.FormatFloat(s.Sample.Rain, 'f', 4, 64),
			strconv.FormatFloat(s.Sample.TEC, 'f', 4, 64),
			strconv.Itoa(s.Sample.Kp),
			strconv.FormatBool(s.Predict),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
