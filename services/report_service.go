package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"swiftaid/interfaces"
	"swiftaid/models"
	"swiftaid/utils"
)

const (
	exportTimestampLayout = "2006-01-02 15:04:05"
	exportFilenameLayout  = "20060102_150405"
	trendDateLayout       = "2006-01-02"
	mapsLinkFormat        = "https://www.google.com/maps?q=%s,%s"
	notAvailable          = "N/A"
)

var exportHeader = []string{
	"Incident ID",
	"User Name",
	"User Email",
	"Type",
	"Latitude",
	"Longitude",
	"Google Maps Link",
	"Acceleration (m/s²)",
	"Speed (km/h)",
	"Timestamp",
	"Status",
}

type ReportService struct {
	stores interfaces.Stores
	now    func() time.Time
}

func NewReportService(stores interfaces.Stores) *ReportService {
	return &ReportService{
		stores: stores,
		now:    time.Now,
	}
}

// CSVExport is a rendered incidents export.
type CSVExport struct {
	Filename string
	Body     []byte
}

// ExportIncidents renders every incident, newest first, as CSV. The whole
// file is built before returning so a failure can still be reported as JSON.
func (rs *ReportService) ExportIncidents(ctx context.Context) (*CSVExport, error) {
	incidents, err := rs.stores.Incidents.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, utils.NewInternalError("Failed to write export", err)
	}

	resolver := newNameResolver(rs.stores.Users)
	for _, incident := range incidents {
		name, err := resolver.Name(ctx, incident)
		if err != nil {
			return nil, err
		}
		if err := w.Write(exportRow(incident, name)); err != nil {
			return nil, utils.NewInternalError("Failed to write export", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, utils.NewInternalError("Failed to write export", err)
	}

	return &CSVExport{
		Filename: fmt.Sprintf("incidents_export_%s.csv", rs.now().UTC().Format(exportFilenameLayout)),
		Body:     buf.Bytes(),
	}, nil
}

func exportRow(incident models.Incident, userName string) []string {
	status := "Auto"
	if incident.Metadata.Manual {
		status = "Manual"
	}

	return []string{
		incident.IncidentID,
		userName,
		incident.UserEmail,
		incident.Metadata.Type(),
		formatOptional(incident.Lat),
		formatOptional(incident.Lng),
		MapsLink(incident.Lat, incident.Lng),
		formatOptional(incident.AccelMag),
		formatOptional(incident.Speed),
		incident.Timestamp.Format(exportTimestampLayout),
		status,
	}
}

// MapsLink returns a Google Maps link for the coordinates, or "N/A" unless
// both are present.
func MapsLink(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return notAvailable
	}
	return fmt.Sprintf(mapsLinkFormat, formatFloat(*lat), formatFloat(*lng))
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DailyTrend counts incidents per UTC day for the last days days and today,
// oldest first. Days without incidents are reported with a zero count.
func (rs *ReportService) DailyTrend(ctx context.Context, days int) ([]models.DailyCount, error) {
	if days < 0 {
		return nil, utils.NewBadRequestError("days must not be negative")
	}

	today := startOfDay(rs.now())
	out := make([]models.DailyCount, 0, days+1)
	for offset := days; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		next := day.AddDate(0, 0, 1)

		count, err := rs.stores.Incidents.Count(ctx, interfaces.IncidentFilter{Since: &day, Until: &next})
		if err != nil {
			return nil, err
		}
		out = append(out, models.DailyCount{
			Date:  day.Format(trendDateLayout),
			Count: count,
		})
	}
	return out, nil
}

// HourlyDistribution returns incident counts per UTC hour of day.
func (rs *ReportService) HourlyDistribution(ctx context.Context) ([24]int64, error) {
	return rs.stores.Incidents.HourlyDistribution(ctx)
}

func (rs *ReportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		stats models.DashboardStats
		err   error
	)

	if stats.TotalUsers, err = rs.stores.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalIncidents, err = rs.stores.Incidents.Count(ctx, interfaces.IncidentFilter{}); err != nil {
		return nil, err
	}

	today := startOfDay(rs.now())
	if stats.TodayIncidents, err = rs.stores.Incidents.Count(ctx, interfaces.IncidentFilter{Since: &today}); err != nil {
		return nil, err
	}
	if stats.TotalHospitals, err = rs.stores.Hospitals.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPolice, err = rs.stores.Police.Count(ctx); err != nil {
		return nil, err
	}

	exists, err := rs.stores.Assignments.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		if stats.ActiveAssignments, err = rs.stores.Assignments.CountByStatus(ctx, models.AssignmentStatusAccepted); err != nil {
			return nil, err
		}
	}

	if stats.EmailsSent, err = rs.stores.Incidents.SumEmailsSent(ctx); err != nil {
		return nil, err
	}

	manual, auto := true, false
	if stats.IncidentTypes.ManualSelf, err = rs.stores.Incidents.Count(ctx, interfaces.IncidentFilter{Manual: &manual, SOSType: models.SOSTypeSelf}); err != nil {
		return nil, err
	}
	if stats.IncidentTypes.ManualOther, err = rs.stores.Incidents.Count(ctx, interfaces.IncidentFilter{Manual: &manual, SOSType: models.SOSTypeOther}); err != nil {
		return nil, err
	}
	if stats.IncidentTypes.AutoDetected, err = rs.stores.Incidents.Count(ctx, interfaces.IncidentFilter{Manual: &auto}); err != nil {
		return nil, err
	}

	return &stats, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
