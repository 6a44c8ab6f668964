package resutils

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/wgdzlh/resutils/utils"
)

type reportResult struct {
	Indicator []Indicator           `json:"indicator"`
	Symbology []ClassificationEntry `json:"raster_symbology,omitempty"`
	Site      *geojson.Geometry     `json:"site,omitempty"`
}

type report struct {
	Result reportResult `json:"result"`
}

// 输出JSON报告，site可为nil
func ReportJSON(records []Indicator, sym []ClassificationEntry, site *geom.Point) (ret AnyJson, err error) {
	doc := report{Result: reportResult{Indicator: records, Symbology: sym}}
	if doc.Result.Indicator == nil {
		doc.Result.Indicator = []Indicator{}
	}
	if site != nil {
		if doc.Result.Site, err = geojson.Encode(site); err != nil {
			err = eris.Wrap(err, "encode site")
			return
		}
	}
	ret, err = json.Marshal(doc)
	return
}

// 从JSON报告中取出指标列表
func ParseReportIndicators(data AnyJson) (records []Indicator, err error) {
	var doc report
	if err = json.Unmarshal(data, &doc); err != nil {
		err = eris.Wrap(err, "decode report")
		return
	}
	records = doc.Result.Indicator
	return
}

// 输出xlsx报告：指标表与图例表
func SaveReportXLSX(path string, records []Indicator, sym []ClassificationEntry) (err error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SHEET_INDICATORS)
	if err != nil {
		return eris.Wrap(err, "xlsx: add indicator sheet")
	}
	addRow(sheet, "name", "value", "unit", "display")
	for _, r := range records {
		display := r.Value
		if v, e := strconv.ParseFloat(r.Value, 64); e == nil {
			display = utils.HumanNumber(v, decimalsOf(r.Value))
		}
		addRow(sheet, r.Name, r.Value, r.Unit, display)
	}
	if len(sym) > 0 {
		if sheet, err = f.AddSheet(SHEET_SYMBOLOGY); err != nil {
			return eris.Wrap(err, "xlsx: add symbology sheet")
		}
		addRow(sheet, "value", "label", "min", "max", "red", "green", "blue", "alpha", "opacity")
		for _, s := range sym {
			row := sheet.AddRow()
			row.AddCell().SetInt(s.Class)
			row.AddCell().SetString(s.Label)
			row.AddCell().SetFloat(s.Min)
			row.AddCell().SetFloat(s.Max)
			row.AddCell().SetInt(int(s.Color.R))
			row.AddCell().SetInt(int(s.Color.G))
			row.AddCell().SetInt(int(s.Color.B))
			row.AddCell().SetInt(int(s.Color.A))
			row.AddCell().SetFloat(s.Opacity)
		}
	}
	if err = f.Save(path); err != nil {
		err = eris.Wrap(err, "xlsx: save")
	}
	return
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}

func decimalsOf(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}
