package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStaffRecordsEmbeddedData(t *testing.T) {
	records, err := ParseStaffRecords(strings.NewReader(staffCSV))
	require.NoError(t, err)
	require.NotEmpty(t, records)

	known := make(map[string]bool, len(DemoServices))
	for _, svc := range DemoServices {
		known[svc.Name] = true
	}

	for _, record := range records {
		assert.NotEmpty(t, record.Staff.Email)
		require.Len(t, record.Schedules, 7)
		for i, ws := range record.Schedules {
			assert.Equal(t, int32(i+1), ws.DayOfWeek)
		}
		for _, name := range record.Services {
			assert.True(t, known[name], "unknown service %q for %s", name, record.Staff.Email)
		}
	}
}

func TestParseStaffRecords(t *testing.T) {
	sheet := "first_name,last_name,email,services,1,2,3,4,5,6,7\n" +
		"Anna,Nowak,anna@salon.local,Haircut; Coloring ,09:00-17:00,,10:30-14:00,,,,\n"

	records, err := ParseStaffRecords(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "Anna", record.Staff.FirstName)
	assert.Equal(t, "Nowak", record.Staff.LastName)
	assert.Equal(t, []string{"Haircut", "Coloring"}, record.Services)

	monday := record.Schedules[0]
	assert.True(t, monday.IsWorkingDay)
	assert.Equal(t, "09:00:00", monday.StartTime)
	assert.Equal(t, "17:00:00", monday.EndTime)

	assert.False(t, record.Schedules[1].IsWorkingDay)

	wednesday := record.Schedules[2]
	assert.True(t, wednesday.IsWorkingDay)
	assert.Equal(t, "10:30:00", wednesday.StartTime)
	assert.Equal(t, "14:00:00", wednesday.EndTime)
}

func TestParseStaffRecordsRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"missing columns": "first_name,last_name,email,services,1,2,3\n",
		"wrong header":    "name,last_name,email,services,1,2,3,4,5,6,7\n",
		"bad hours":       "first_name,last_name,email,services,1,2,3,4,5,6,7\nA,B,a@b.c,Haircut,9 to 5,,,,,,\n",
		"reversed hours":  "first_name,last_name,email,services,1,2,3,4,5,6,7\nA,B,a@b.c,Haircut,17:00-09:00,,,,,,\n",
	}

	for name, sheet := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStaffRecords(strings.NewReader(sheet))
			assert.Error(t, err)
		})
	}
}
