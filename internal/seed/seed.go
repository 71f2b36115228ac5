package seed

import (
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/julnac/salon-manager/backend/internal/repository"
	"github.com/julnac/salon-manager/backend/internal/utils"
)

//go:embed data/staff.csv
var staffCSV string

var DemoServices = []domain.ServiceOffer{
	{Name: "Haircut", Price: 80, DurationMinutes: 30},
	{Name: "Beard trim", Price: 40, DurationMinutes: 20},
	{Name: "Coloring", Price: 250, DurationMinutes: 90},
	{Name: "Highlights", Price: 300, DurationMinutes: 120},
	{Name: "Blow dry", Price: 60, DurationMinutes: 25},
	{Name: "Keratin treatment", Price: 400, DurationMinutes: 150},
	{Name: "Manicure", Price: 90, DurationMinutes: 45},
	{Name: "Pedicure", Price: 110, DurationMinutes: 50},
	{Name: "Eyebrow shaping", Price: 50, DurationMinutes: 15},
	{Name: "Scalp massage", Price: 70, DurationMinutes: 30},
}

// StaffRecord is one row of the demo staff sheet. Schedules holds an entry for every ISO day;
// days with an empty cell are days off.
type StaffRecord struct {
	Staff     domain.Staff
	Services  []string
	Schedules []domain.WorkSchedule
}

var fixedColumns = []string{"first_name", "last_name", "email", "services"}

// ParseStaffRecords reads the sheet: first_name, last_name, email, services separated by ';',
// then the columns 1 to 7 with "HH:MM-HH:MM" working hours or nothing.
func ParseStaffRecords(rd io.Reader) ([]StaffRecord, error) {
	reader := csv.NewReader(rd)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(headers) != len(fixedColumns)+7 {
		return nil, fmt.Errorf("expected %d columns, got %d", len(fixedColumns)+7, len(headers))
	}
	for i, name := range fixedColumns {
		if headers[i] != name {
			return nil, fmt.Errorf("column %d must be %q, got %q", i+1, name, headers[i])
		}
	}

	records := make([]StaffRecord, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		record := StaffRecord{
			Staff: domain.Staff{
				FirstName: row[0],
				LastName:  row[1],
				Email:     row[2],
			},
			Schedules: make([]domain.WorkSchedule, 0, 7),
		}
		for _, name := range strings.Split(row[3], ";") {
			if name = strings.TrimSpace(name); name != "" {
				record.Services = append(record.Services, name)
			}
		}

		for i, cell := range row[len(fixedColumns):] {
			day, err := strconv.Atoi(headers[len(fixedColumns)+i])
			if err != nil {
				return nil, fmt.Errorf("invalid day column %q", headers[len(fixedColumns)+i])
			}

			ws, err := parseHours(int32(day), cell)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			record.Schedules = append(record.Schedules, ws)
		}

		records = append(records, record)
	}

	return records, nil
}

func parseHours(day int32, cell string) (domain.WorkSchedule, error) {
	ws := domain.WorkSchedule{
		DayOfWeek: day,
		StartTime: "00:00:00",
		EndTime:   "00:00:00",
	}

	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ws, nil
	}

	start, end, ok := strings.Cut(cell, "-")
	if !ok {
		return ws, fmt.Errorf("day %d: hours %q must look like 09:00-17:00", day, cell)
	}

	ws.StartTime = strings.TrimSpace(start) + ":00"
	ws.EndTime = strings.TrimSpace(end) + ":00"
	ws.IsWorkingDay = true

	if err := utils.ValidateWorkSchedule(&ws); err != nil {
		return ws, fmt.Errorf("day %d: %w", day, err)
	}

	return ws, nil
}

// SeedRealData inserts the demo services and staff together with their qualifications and
// weekly schedules. Services already present (by name) are reused.
func SeedRealData(ctx context.Context, r *repository.Repository) {
	records, err := ParseStaffRecords(strings.NewReader(staffCSV))
	if err != nil {
		slog.Error("failed to parse demo staff", "error", err)
		return
	}

	existing, err := r.GetAllServiceOffers(ctx)
	if err != nil {
		slog.Error("failed to list services", "error", err)
		return
	}

	serviceIDs := make(map[string]int64, len(DemoServices))
	for _, svc := range existing {
		serviceIDs[svc.Name] = svc.ID
	}

	for _, demo := range DemoServices {
		if _, ok := serviceIDs[demo.Name]; ok {
			continue
		}

		svc := demo
		if err := r.CreateServiceOffer(ctx, &svc); err != nil {
			slog.Error("failed to insert service", "name", svc.Name, "error", err)
			return
		}
		serviceIDs[svc.Name] = svc.ID
	}

	for _, record := range records {
		member := record.Staff
		if err := r.CreateStaff(ctx, &member); err != nil {
			slog.Error("failed to insert staff member", "email", member.Email, "error", err)
			continue
		}

		for _, name := range record.Services {
			serviceID, ok := serviceIDs[name]
			if !ok {
				slog.Warn("unknown service in demo data", "service", name, "email", member.Email)
				continue
			}

			q := &domain.Qualification{
				StaffID:         member.ID,
				ServiceID:       serviceID,
				ExperienceYears: 1,
			}
			if err := r.CreateQualification(ctx, q); err != nil {
				slog.Error("failed to insert qualification", "staffID", member.ID, "service", name, "error", err)
			}
		}

		for _, ws := range record.Schedules {
			ws.StaffID = member.ID
			if err := r.UpsertWorkSchedule(ctx, &ws); err != nil {
				slog.Error("failed to insert work schedule", "staffID", member.ID, "day", ws.DayOfWeek, "error", err)
			}
		}
	}

	slog.Info("demo data inserted", "services", len(serviceIDs), "staff", len(records))
}
