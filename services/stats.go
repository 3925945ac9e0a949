package services

import (
	"log"
	"strings"
	"time"

	"digimarket/models"

	"gorm.io/gorm"
)

// StatsConfig pins down the two ambient inputs of the dashboard counters so
// the aggregation itself stays deterministic: the client-facing time zone
// and the day the week starts on.
type StatsConfig struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// LoadStatsConfig reads APP_TIMEZONE (default UTC) and WEEK_STARTS_ON
// (default monday) from the environment.
func LoadStatsConfig() StatsConfig {
	cfg := StatsConfig{Location: time.UTC, WeekStart: time.Monday}

	if tz := envOr("APP_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("⚠️  Invalid APP_TIMEZONE %q, falling back to UTC: %v", tz, err)
		} else {
			cfg.Location = loc
		}
	}

	if day := envOr("WEEK_STARTS_ON", ""); day != "" {
		if wd, ok := parseWeekday(day); ok {
			cfg.WeekStart = wd
		} else {
			log.Printf("⚠️  Invalid WEEK_STARTS_ON %q, keeping monday", day)
		}
	}

	return cfg
}

func parseWeekday(s string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(s, wd.String()) {
			return wd, true
		}
	}
	return time.Sunday, false
}

// ReferralStats computes the three dashboard counters for one reseller
// code at the given instant. Each counter is an independent count over the
// full referral set: this_week overlaps this_month whenever the current
// week sits inside the current month, and both are always <= total. Nothing
// is cached or materialized; every call re-runs the aggregate queries.
func ReferralStats(db *gorm.DB, cfg StatsConfig, code string, now time.Time) (models.ReferralStats, error) {
	var stats models.ReferralStats

	base := func() *gorm.DB {
		return db.Model(&models.Member{}).Where("referrer_code = ?", code)
	}

	if err := base().Count(&stats.TotalReferrals).Error; err != nil {
		return models.ReferralStats{}, err
	}

	monthStart, nextMonthStart := MonthWindow(now, cfg.Location)
	if err := base().
		Where("created_at >= ? AND created_at < ?", monthStart, nextMonthStart).
		Count(&stats.ThisMonth).Error; err != nil {
		return models.ReferralStats{}, err
	}

	// Lower bound only: "since the start of this week".
	if err := base().
		Where("created_at >= ?", StartOfWeek(now, cfg.Location, cfg.WeekStart)).
		Count(&stats.ThisWeek).Error; err != nil {
		return models.ReferralStats{}, err
	}

	return stats, nil
}

// MonthWindow returns the half-open [first of month, first of next month)
// interval containing now, in the given zone.
func MonthWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// StartOfWeek returns midnight of the most recent weekStart day at or
// before now, in the given zone.
func StartOfWeek(now time.Time, loc *time.Location, weekStart time.Weekday) time.Time {
	local := now.In(loc)
	daysBack := (int(local.Weekday()) - int(weekStart) + 7) % 7
	day := local.AddDate(0, 0, -daysBack)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}
