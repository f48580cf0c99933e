package store

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/san-kum/gravsim/internal/tree"
)

type ExportData struct {
	Scene   string             `json:"scene"`
	Ranks   int                `json:"ranks"`
	MaxMass float64            `json:"max_mass"`
	Theta   float64            `json:"theta"`
	Bodies  []BodyRecord       `json:"bodies"`
	Metrics map[string]float64 `json:"metrics"`
}

type BodyRecord struct {
	Position     [3]float64 `json:"position"`
	Mass         float64    `json:"mass"`
	Acceleration [3]float64 `json:"acceleration"`
}

func Collect(scene string, ranks int, maxMass, theta float64, bodies []tree.Body, metrics map[string]float64) ExportData {
	data := ExportData{
		Scene:   scene,
		Ranks:   ranks,
		MaxMass: maxMass,
		Theta:   theta,
		Bodies:  make([]BodyRecord, len(bodies)),
		Metrics: metrics,
	}
	for i, b := range bodies {
		data.Bodies[i] = BodyRecord{
			Position:     b.Position(),
			Mass:         b.Mass(),
			Acceleration: b.Acceleration(),
		}
	}
	return data
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "mass", "ax", "ay", "az"}); err != nil {
		return err
	}
	for _, b := range data.Bodies {
		row := []string{
			fmtF(b.Position[0]), fmtF(b.Position[1]), fmtF(b.Position[2]),
			fmtF(b.Mass),
			fmtF(b.Acceleration[0]), fmtF(b.Acceleration[1]), fmtF(b.Acceleration[2]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func fmtF(v float64) string { return strconv.FormatFloat(v, 'g', 17, 64) }
