package attendance

import (
	"math/rand"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRecords() []attendance.Record {
	return []attendance.Record{
		{ID: "a1", Date: "2023-10-01", CheckIn: strPtr("08:55"), CheckOut: strPtr("17:05"), Status: attendance.StatusPresent},
		{ID: "a2", Date: "2023-10-02", CheckIn: strPtr("09:10"), CheckOut: strPtr("17:00"), Status: attendance.StatusLate},
		{ID: "a3", Date: "2023-10-03", CheckIn: strPtr("08:45"), CheckOut: strPtr("17:30"), Status: attendance.StatusPresent},
		{ID: "a4", Date: "2023-10-04", Status: attendance.StatusSick},
		{ID: "a5", Date: "2023-10-05", CheckIn: strPtr("09:00"), CheckOut: strPtr("18:00"), Status: attendance.StatusPresent},
	}
}

func TestFindByDate(t *testing.T) {
	records := append(sampleRecords(), attendance.Record{ID: "a6", Date: "2023-10-03", Status: attendance.StatusLate})

	found := FindByDate(records, "2023-10-03")
	require.NotNil(t, found)
	assert.Equal(t, "a3", found.ID)

	assert.Nil(t, FindByDate(records, "2023-11-01"))
	assert.Nil(t, FindByDate(nil, "2023-10-01"))
}

func TestFindOpenByDate(t *testing.T) {
	records := []attendance.Record{
		{ID: "closed", Date: "2023-10-01", CheckIn: strPtr("08:00 AM"), CheckOut: strPtr("12:00 PM")},
		{ID: "open", Date: "2023-10-01", CheckIn: strPtr("01:00 PM")},
	}

	found := FindOpenByDate(records, "2023-10-01")
	require.NotNil(t, found)
	assert.Equal(t, "open", found.ID)
	assert.Nil(t, FindOpenByDate(records[:1], "2023-10-01"))
}

func TestAggregate(t *testing.T) {
	summary := Aggregate(sampleRecords())

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Count(attendance.StatusPresent))
	assert.Equal(t, 1, summary.Count(attendance.StatusLate))
	assert.Equal(t, 1, summary.Count(attendance.StatusSick))
	assert.Equal(t, 0, summary.Count(attendance.StatusLeave))
	assert.Equal(t, 0, summary.Count(attendance.StatusAbsent))
}

func TestAggregate_Empty(t *testing.T) {
	summary := Aggregate(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Len(t, summary.ByStatus, len(attendance.Statuses))
}

func randomRecords(r *rand.Rand, n int) []attendance.Record {
	dates := []string{"2023-09-30", "2023-10-01", "2023-10-02", "2023-10-10", "2024-01-01"}
	records := make([]attendance.Record, n)
	for i := range records {
		records[i] = attendance.Record{
			ID:     string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Date:   dates[r.Intn(len(dates))],
			Status: attendance.Statuses[r.Intn(len(attendance.Statuses))],
		}
	}
	return records
}

func TestAggregate_PartitionsRecords(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 50; n++ {
		records := randomRecords(r, n)
		summary := Aggregate(records)

		sum := 0
		for _, c := range summary.ByStatus {
			sum += c
		}
		assert.Equal(t, len(records), sum)
		assert.Equal(t, len(records), summary.Total)
	}
}

func TestSortByDateDescending(t *testing.T) {
	records := sampleRecords()
	sorted := SortByDateDescending(records)

	ids := make([]string, 0, len(sorted))
	for _, r := range sorted {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a5", "a4", "a3", "a2", "a1"}, ids)

	// input untouched
	assert.Equal(t, "a1", records[0].ID)
}

func TestSortByDateDescending_StableForEqualDates(t *testing.T) {
	records := []attendance.Record{
		{ID: "x", Date: "2023-10-01"},
		{ID: "y", Date: "2023-10-02"},
		{ID: "z", Date: "2023-10-01"},
		{ID: "w", Date: "2023-10-02"},
	}

	sorted := SortByDateDescending(records)
	ids := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID}
	assert.Equal(t, []string{"y", "w", "x", "z"}, ids)
}

func TestSortByDateDescending_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 40; n++ {
		records := randomRecords(r, n)
		sorted := SortByDateDescending(records)

		require.Len(t, sorted, len(records))
		for i := 1; i < len(sorted); i++ {
			assert.GreaterOrEqual(t, sorted[i-1].Date, sorted[i].Date)
		}

		assert.Equal(t, sorted, SortByDateDescending(sorted), "sorting twice must be idempotent")

		seen := make(map[string]int)
		for _, rec := range records {
			seen[rec.ID]++
		}
		for _, rec := range sorted {
			seen[rec.ID]--
		}
		for id, c := range seen {
			assert.Zero(t, c, "record %s dropped or duplicated", id)
		}
	}
}
