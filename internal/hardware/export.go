package hardware

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"assetdb/internal/store"

	"github.com/xuri/excelize/v2"
)

const (
	ReportSheet       = "Hardware Report"
	ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type reportColumn struct {
	Header string
	Width  float64
	Wrap   bool
	Value  func(v *View) any
}

var reportColumns = []reportColumn{
	{"ID", 8, false, func(v *View) any { return v.ID }},
	{"Hostname", 25, false, func(v *View) any { return v.Hostname }},
	{"IPMI", 20, false, func(v *View) any { return deref(v.Ipmi) }},
	{"Serial", 20, false, func(v *View) any { return deref(v.Serial) }},
	{"Owner", 20, false, func(v *View) any { return deref(v.Owner) }},
	{"Status", 15, false, func(v *View) any { return deref(v.Status.Name) }},
	{"Type", 20, false, func(v *View) any { return deref(v.Type.Name) }},
	{"Brand", 20, false, func(v *View) any { return deref(v.Model.Brand) }},
	{"Model", 25, false, func(v *View) any { return deref(v.Model.Model) }},
	{"Vendor", 20, false, func(v *View) any { return deref(v.Vendor.Name) }},
	{"Site", 15, false, func(v *View) any { return deref(v.Location.SiteName) }},
	{"Room", 20, false, func(v *View) any { return deref(v.Location.Room) }},
	{"Rack", 15, false, func(v *View) any { return deref(v.Location.Rack) }},
	{"Cluster", 25, false, func(v *View) any { return deref(v.Cluster.Name) }},
	{"Project", 25, false, func(v *View) any { return deref(v.Cluster.Project.Name) }},
	{"Unit Range", 15, false, func(v *View) any { return deref(v.UnitRange) }},
	{"Switches", 40, true, func(v *View) any { return switchesCell(v.Switches) }},
	{"Network Interfaces", 50, true, func(v *View) any { return interfacesCell(v.NetworkInterfaces) }},
	{"Created At", 20, false, func(v *View) any { return stamp(v.CreatedAt) }},
	{"Updated At", 20, false, func(v *View) any { return stamp(v.UpdatedAt) }},
}

// ReportFileName — имя вложения: hardware-report-<unix millis>.xlsx.
func ReportFileName(unixMillis int64) string {
	return fmt.Sprintf("hardware-report-%d.xlsx", unixMillis)
}

// Export writes every hardware aggregate as an xlsx workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	items, err := s.repo.FindAllWithRelations(ctx, store.FindOptions{})
	if err != nil {
		return err
	}
	return WriteReport(w, items)
}

func WriteReport(w io.Writer, items []View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	titles := make([]any, 0, len(reportColumns))
	for i, c := range reportColumns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ReportSheet, col, col, c.Width); err != nil {
			return err
		}
		titles = append(titles, c.Header)
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &titles); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(reportColumns))
	if err := f.SetCellStyle(ReportSheet, "A1", last+"1", header); err != nil {
		return err
	}

	for i := range items {
		row := make([]any, 0, len(reportColumns))
		for _, c := range reportColumns {
			row = append(row, c.Value(&items[i]))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return err
		}
		for j, c := range reportColumns {
			if !c.Wrap {
				continue
			}
			ref, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellStyle(ReportSheet, ref, ref, wrap); err != nil {
				return err
			}
		}
	}
	_, err = f.WriteTo(w)
	return err
}

func switchesCell(items []SwitchLink) string {
	parts := make([]string, 0, len(items))
	for _, s := range items {
		parts = append(parts, fmt.Sprintf("%s - %s", deref(s.Name), deref(s.Port)))
	}
	return strings.Join(parts, ",\n")
}

func interfacesCell(items []Interface) string {
	parts := make([]string, 0, len(items))
	for _, n := range items {
		parts = append(parts, fmt.Sprintf("%s [%s | %s]", n.InterfaceName, deref(n.IPAddress), deref(n.MACAddress)))
	}
	return strings.Join(parts, ",\n")
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateTime)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
