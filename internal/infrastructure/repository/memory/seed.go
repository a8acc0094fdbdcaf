package memory

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

const seasonWeeks = 18

// SeedMembers is the development roster. Production members come from the
// account service on first login and land in postgres.
func SeedMembers() []user.Member {
	return []user.Member{
		{UserID: "dev-user-1", Username: "nadia", DisplayName: "Nadia", TeamKey: "461.l.777777.t.1"},
		{UserID: "dev-user-2", Username: "bram", DisplayName: "Bram", TeamKey: "461.l.777777.t.2"},
		{UserID: "dev-user-3", Username: "sinta", DisplayName: "Sinta", TeamKey: "461.l.777777.t.3"},
		{UserID: "dev-user-4", Username: "yusuf", DisplayName: "Yusuf", TeamKey: "461.l.777777.t.4"},
		{UserID: "dev-user-5", Username: "kirana", DisplayName: "", TeamKey: "461.l.777777.t.5"},
	}
}

// SeedLockSchedule builds the 2025 season lock table. Every week locks at
// the Thursday night kickoff, 00:15 UTC Friday.
func SeedLockSchedule() []schedule.Entry {
	firstLock := time.Date(2025, time.September, 5, 0, 15, 0, 0, time.UTC)

	entries := make([]schedule.Entry, 0, seasonWeeks)
	for week := 1; week <= seasonWeeks; week++ {
		entries = append(entries, schedule.Entry{
			Week:   week,
			LockAt: firstLock.AddDate(0, 0, (week-1)*7),
		})
	}
	return entries
}
