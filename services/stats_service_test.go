// file: services/stats_service_test.go
package services

import (
	"testing"

	"github.com/syedmaroofhussain3-blip/university-hub/models"
)

// Redis 未初始化时走纯数据库统计，测试环境正好如此

func TestGetEventStats(t *testing.T) {
	db := newTestDB(t)
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, IsPaid: true, Capacity: 10})

	leader := mustCreateUser(t, db, "stats-leader@gmail.com")
	member := mustCreateUser(t, db, "stats-member@gmail.com")

	team, leaderReg, err := CreateTeam(db, leader.ID, ev.ID, "Kilo", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, member.ID, ev.ID, team.JoinCode); err != nil {
		t.Fatalf("JoinTeam error: %v", err)
	}
	if _, err := SetRegistrationStatus(db, leaderReg.ID, models.StatusApproved); err != nil {
		t.Fatalf("SetRegistrationStatus error: %v", err)
	}

	stats, err := GetEventStats(db, ev.ID)
	if err != nil {
		t.Fatalf("GetEventStats error: %v", err)
	}
	if stats.Registered != 2 {
		t.Fatalf("expected 2 registered, got %d", stats.Registered)
	}
	if stats.Approved != 1 || stats.Pending != 1 {
		t.Fatalf("expected 1 approved / 1 pending, got %d / %d", stats.Approved, stats.Pending)
	}
	if stats.SpotsLeft != 8 {
		t.Fatalf("expected 8 spots left, got %d", stats.SpotsLeft)
	}
}

func TestGetEventStats_UnlimitedCapacity(t *testing.T) {
	db := newTestDB(t)
	ev := mustCreateEvent(t, db, models.Event{Capacity: 0})

	stats, err := GetEventStats(db, ev.ID)
	if err != nil {
		t.Fatalf("GetEventStats error: %v", err)
	}
	if stats.SpotsLeft != -1 {
		t.Fatalf("capacity 0 means unlimited, expected -1 spots left, got %d", stats.SpotsLeft)
	}
}
