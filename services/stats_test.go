package services

import (
	"testing"
	"time"

	"digimarket/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB, code string, createdAt time.Time) {
	t.Helper()
	m := models.Member{
		ID:             uuid.NewString(),
		FullName:       "Member " + createdAt.Format("2006-01-02"),
		Address:        "Somewhere 1",
		WhatsappNumber: "+620000000",
		Email:          uuid.NewString() + "@example.com",
		ReferrerCode:   &code,
		Status:         models.StatusActive,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	// Create sets its own timestamp; pin the one the windows care about.
	if err := db.Model(&models.Member{}).Where("id = ?", m.ID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("pin created_at: %v", err)
	}
}

func TestReferralStats_Windows(t *testing.T) {
	db := newTestDB(t)
	cfg := StatsConfig{Location: time.UTC, WeekStart: time.Monday}

	// Wednesday 2024-01-17: month starts Jan 1, week starts Mon Jan 15.
	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

	code := "STATS123"
	seedMember(t, db, code, time.Date(2023, 12, 15, 10, 0, 0, 0, time.UTC)) // old month
	seedMember(t, db, code, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))   // month start + 2d
	seedMember(t, db, code, time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC))  // week start - 1d
	seedMember(t, db, code, time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC))  // week start + 1d

	stats, err := ReferralStats(db, cfg, code, now)
	if err != nil {
		t.Fatalf("ReferralStats: %v", err)
	}

	if stats.TotalReferrals != 4 {
		t.Errorf("total_referrals = %d, want 4", stats.TotalReferrals)
	}
	if stats.ThisMonth != 3 {
		t.Errorf("this_month = %d, want 3", stats.ThisMonth)
	}
	if stats.ThisWeek != 1 {
		t.Errorf("this_week = %d, want 1", stats.ThisWeek)
	}
}

func TestReferralStats_OverlapAndIdempotence(t *testing.T) {
	db := newTestDB(t)
	cfg := StatsConfig{Location: time.UTC, WeekStart: time.Monday}
	now := time.Date(2024, 3, 20, 8, 30, 0, 0, time.UTC)

	code := "OVLP0001"
	for _, created := range []time.Time{
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC),
	} {
		seedMember(t, db, code, created)
	}

	first, err := ReferralStats(db, cfg, code, now)
	if err != nil {
		t.Fatalf("ReferralStats: %v", err)
	}
	second, err := ReferralStats(db, cfg, code, now)
	if err != nil {
		t.Fatalf("ReferralStats (second call): %v", err)
	}

	if first != second {
		t.Errorf("stats not idempotent: %+v vs %+v", first, second)
	}
	if first.ThisWeek > first.TotalReferrals || first.ThisMonth > first.TotalReferrals {
		t.Errorf("window counts exceed total: %+v", first)
	}
	// Mid-month week: the week counts are a subset of the month counts here.
	if first.ThisWeek > first.ThisMonth {
		t.Errorf("this_week %d > this_month %d for a mid-month week", first.ThisWeek, first.ThisMonth)
	}
}

// A week straddling a month boundary can legitimately put this_week above
// this_month: each window is an independent count, not a partition.
func TestReferralStats_WeekStraddlesMonth(t *testing.T) {
	db := newTestDB(t)
	cfg := StatsConfig{Location: time.UTC, WeekStart: time.Monday}

	// Friday 2024-03-01: the current week started Monday 2024-02-26.
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	code := "EDGE0001"
	seedMember(t, db, code, time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)) // in week, not in month
	seedMember(t, db, code, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)) // in week, not in month
	seedMember(t, db, code, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))  // in both

	stats, err := ReferralStats(db, cfg, code, now)
	if err != nil {
		t.Fatalf("ReferralStats: %v", err)
	}
	if stats.TotalReferrals != 3 || stats.ThisMonth != 1 || stats.ThisWeek != 3 {
		t.Errorf("got %+v, want total=3 this_month=1 this_week=3", stats)
	}
}

func TestReferralStats_UnknownCodeIsZero(t *testing.T) {
	db := newTestDB(t)
	cfg := StatsConfig{Location: time.UTC, WeekStart: time.Monday}

	stats, err := ReferralStats(db, cfg, "NOSUCH00", time.Now())
	if err != nil {
		t.Fatalf("ReferralStats: %v", err)
	}
	if stats.TotalReferrals != 0 || stats.ThisMonth != 0 || stats.ThisWeek != 0 {
		t.Errorf("expected zero stats for unknown code, got %+v", stats)
	}
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		start, end := MonthWindow(tt.now, time.UTC)
		if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
			t.Errorf("MonthWindow(%v) = [%v, %v), want [%v, %v)",
				tt.now, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		now       time.Time
		weekStart time.Weekday
		want      time.Time
	}{
		// Wednesday, Monday weeks
		{time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC), time.Monday, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		// Monday itself
		{time.Date(2024, 1, 15, 0, 0, 1, 0, time.UTC), time.Monday, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		// Sunday with Monday weeks reaches back six days
		{time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC), time.Monday, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		// Sunday-start weeks
		{time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC), time.Sunday, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := StartOfWeek(tt.now, time.UTC, tt.weekStart)
		if !got.Equal(tt.want) {
			t.Errorf("StartOfWeek(%v, %v) = %v, want %v", tt.now, tt.weekStart, got, tt.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	if wd, ok := parseWeekday("sunday"); !ok || wd != time.Sunday {
		t.Errorf("parseWeekday(sunday) = %v, %v", wd, ok)
	}
	if wd, ok := parseWeekday("Friday"); !ok || wd != time.Friday {
		t.Errorf("parseWeekday(Friday) = %v, %v", wd, ok)
	}
	if _, ok := parseWeekday("someday"); ok {
		t.Error("parseWeekday(someday) should fail")
	}
}
