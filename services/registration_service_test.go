// file: services/registration_service_test.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存 SQLite
// TranslateError 与生产配置保持一致，唯一索引冲突才能映射到 gorm.ErrDuplicatedKey
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.RoleAssignment{},
		&models.Event{},
		&models.Registration{},
		&models.Team{},
		&models.TeamMember{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "password123"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func mustCreateEvent(t *testing.T, db *gorm.DB, ev models.Event) models.Event {
	t.Helper()
	if ev.Title == "" {
		ev.Title = "Test Event"
	}
	if ev.StartTime.IsZero() {
		ev.StartTime = time.Now().Add(24 * time.Hour)
	}
	if ev.RegistrationType == "" {
		ev.RegistrationType = models.RegistrationIndividual
	}
	if ev.CreatedBy == 0 {
		ev.CreatedBy = 1
	}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return ev
}

func uintPtr(v uint) *uint { return &v }

func TestRegisterIndividual_UnpaidAutoApproved(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "p1@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationIndividual, IsPaid: false})

	reg, err := RegisterIndividual(db, user.ID, ev.ID)
	if err != nil {
		t.Fatalf("RegisterIndividual error: %v", err)
	}
	if reg.Status != models.StatusApproved {
		t.Fatalf("expected approved without officer action, got %s", reg.Status)
	}
}

func TestRegisterIndividual_PaidAlsoAutoApproved(t *testing.T) {
	// 个人报名不区分付费与否，统一直接通过
	db := newTestDB(t)
	user := mustCreateUser(t, db, "p2@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{IsPaid: true, FeeAmount: 50})

	reg, err := RegisterIndividual(db, user.ID, ev.ID)
	if err != nil {
		t.Fatalf("RegisterIndividual error: %v", err)
	}
	if reg.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %s", reg.Status)
	}
}

func TestRegisterIndividual_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "dup@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{})

	if _, err := RegisterIndividual(db, user.ID, ev.ID); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := RegisterIndividual(db, user.ID, ev.ID); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	var count int64
	db.Model(&models.Registration{}).Where("user_id = ? AND event_id = ?", user.ID, ev.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one registration row, got %d", count)
	}
}

func TestRegisterIndividual_CapacityEnforced(t *testing.T) {
	db := newTestDB(t)
	ev := mustCreateEvent(t, db, models.Event{Capacity: 2})

	for i := 0; i < 2; i++ {
		u := mustCreateUser(t, db, fmt.Sprintf("cap%d@gmail.com", i))
		if _, err := RegisterIndividual(db, u.ID, ev.ID); err != nil {
			t.Fatalf("registration %d failed: %v", i, err)
		}
	}

	overflow := mustCreateUser(t, db, "overflow@gmail.com")
	if _, err := RegisterIndividual(db, overflow.ID, ev.ID); !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
}

func TestRegisterIndividual_TeamEventRejected(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "t@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam})

	if _, err := RegisterIndividual(db, user.ID, ev.ID); !errors.Is(err, ErrNotIndividualEvent) {
		t.Fatalf("expected ErrNotIndividualEvent, got %v", err)
	}
}

func TestCreateTeam_PaidEventLeaderPending(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "leader@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, IsPaid: true})

	team, reg, err := CreateTeam(db, leader.ID, ev.ID, "Alpha", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if reg.Status != models.StatusPending {
		t.Fatalf("paid team event: expected pending leader registration, got %s", reg.Status)
	}
	if len(team.JoinCode) != models.JoinCodeLength {
		t.Fatalf("expected %d-char join code, got %q", models.JoinCodeLength, team.JoinCode)
	}

	// 队长同时拥有成员记录
	var memberCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ? AND user_id = ?", team.ID, leader.ID).Count(&memberCount)
	if memberCount != 1 {
		t.Fatalf("leader membership row missing")
	}
}

func TestCreateTeam_FreeEventApproved(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "free-leader@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, IsPaid: false})

	_, reg, err := CreateTeam(db, leader.ID, ev.ID, "Beta", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if reg.Status != models.StatusApproved {
		t.Fatalf("free team event: expected approved, got %s", reg.Status)
	}
}

func TestJoinTeam_PaidPendingAndBulkApproval(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "bulk-leader@gmail.com")
	m1 := mustCreateUser(t, db, "bulk-m1@gmail.com")
	m2 := mustCreateUser(t, db, "bulk-m2@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, IsPaid: true})

	team, _, err := CreateTeam(db, leader.ID, ev.ID, "Gamma", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	for _, u := range []models.User{m1, m2} {
		_, reg, err := JoinTeam(db, u.ID, ev.ID, team.JoinCode)
		if err != nil {
			t.Fatalf("JoinTeam error for %s: %v", u.Email, err)
		}
		if reg.Status != models.StatusPending {
			t.Fatalf("paid team join: expected pending, got %s", reg.Status)
		}
	}

	affected, err := SetTeamApproval(db, team.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("SetTeamApproval error: %v", err)
	}
	if affected != 3 {
		t.Fatalf("expected 3 registrations updated in one batch, got %d", affected)
	}

	var regs []models.Registration
	db.Where("team_id = ?", team.ID).Find(&regs)
	for _, reg := range regs {
		if reg.Status != models.StatusApproved {
			t.Fatalf("member %d still %s after team approval", reg.UserID, reg.Status)
		}
	}
}

func TestJoinTeam_FullTeamNoPartialState(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "full-leader@gmail.com")
	m1 := mustCreateUser(t, db, "full-m1@gmail.com")
	late := mustCreateUser(t, db, "full-late@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, MaxTeamSize: uintPtr(2)})

	team, _, err := CreateTeam(db, leader.ID, ev.ID, "Delta", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, m1.ID, ev.ID, team.JoinCode); err != nil {
		t.Fatalf("JoinTeam error: %v", err)
	}

	if _, _, err := JoinTeam(db, late.ID, ev.ID, team.JoinCode); !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}

	// 失败的入队不能留下任何记录
	var memberCount, regCount int64
	db.Model(&models.TeamMember{}).Where("user_id = ?", late.ID).Count(&memberCount)
	db.Model(&models.Registration{}).Where("user_id = ?", late.ID).Count(&regCount)
	if memberCount != 0 || regCount != 0 {
		t.Fatalf("failed join left partial state: members=%d regs=%d", memberCount, regCount)
	}
}

func TestJoinTeam_InvalidCode(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "nocode@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam})

	if _, _, err := JoinTeam(db, user.ID, ev.ID, "ZZZZZZ"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestJoinTeam_AlreadyMember(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "am-leader@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam})

	team, _, err := CreateTeam(db, leader.ID, ev.ID, "Echo", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, leader.ID, ev.ID, team.JoinCode); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestJoinCodes_UniqueAcrossTeams(t *testing.T) {
	db := newTestDB(t)
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam})

	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		u := mustCreateUser(t, db, fmt.Sprintf("codes%d@gmail.com", i))
		team, _, err := CreateTeam(db, u.ID, ev.ID, fmt.Sprintf("Team %d", i), "")
		if err != nil {
			t.Fatalf("CreateTeam %d error: %v", i, err)
		}
		if seen[team.JoinCode] {
			t.Fatalf("duplicate join code %q", team.JoinCode)
		}
		if team.JoinCode != strings.ToUpper(team.JoinCode) {
			t.Fatalf("join code %q must be uppercase", team.JoinCode)
		}
		seen[team.JoinCode] = true
	}
}

func TestCancelRegistration(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "cancel@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, IsPaid: true})

	_, reg, err := CreateTeam(db, user.ID, ev.ID, "Foxtrot", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if reg.Status != models.StatusPending {
		t.Fatalf("precondition: expected pending, got %s", reg.Status)
	}

	if err := CancelRegistration(db, reg); err != nil {
		t.Fatalf("cancelling a pending registration must succeed: %v", err)
	}

	// approved 之后不能再取消
	user2 := mustCreateUser(t, db, "cancel2@gmail.com")
	ev2 := mustCreateEvent(t, db, models.Event{})
	reg2, err := RegisterIndividual(db, user2.ID, ev2.ID)
	if err != nil {
		t.Fatalf("RegisterIndividual error: %v", err)
	}
	if err := CancelRegistration(db, reg2); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending for approved registration, got %v", err)
	}
}

func TestSetRegistrationStatus(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "status@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, IsPaid: true})

	_, reg, err := CreateTeam(db, user.ID, ev.ID, "Golf", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}

	updated, err := SetRegistrationStatus(db, reg.ID, models.StatusRejected)
	if err != nil {
		t.Fatalf("SetRegistrationStatus error: %v", err)
	}
	if updated.Status != models.StatusRejected {
		t.Fatalf("expected rejected, got %s", updated.Status)
	}
}

func TestRemoveTeamMember_DeletesMembershipAndRegistration(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "rm-leader@gmail.com")
	member := mustCreateUser(t, db, "rm-member@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam})

	team, _, err := CreateTeam(db, leader.ID, ev.ID, "Hotel", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, member.ID, ev.ID, team.JoinCode); err != nil {
		t.Fatalf("JoinTeam error: %v", err)
	}

	if err := RemoveTeamMember(db, team, member.ID); err != nil {
		t.Fatalf("RemoveTeamMember error: %v", err)
	}

	var memberCount, regCount int64
	db.Model(&models.TeamMember{}).Where("team_id = ? AND user_id = ?", team.ID, member.ID).Count(&memberCount)
	db.Model(&models.Registration{}).Where("event_id = ? AND user_id = ?", ev.ID, member.ID).Count(&regCount)
	if memberCount != 0 || regCount != 0 {
		t.Fatalf("expected both rows removed: members=%d regs=%d", memberCount, regCount)
	}

	// 不存在的成员返回 not found
	if err := RemoveTeamMember(db, team, member.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDisbandTeam_Cascades(t *testing.T) {
	db := newTestDB(t)
	leader := mustCreateUser(t, db, "dis-leader@gmail.com")
	member := mustCreateUser(t, db, "dis-member@gmail.com")
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam})

	team, _, err := CreateTeam(db, leader.ID, ev.ID, "India", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, member.ID, ev.ID, team.JoinCode); err != nil {
		t.Fatalf("JoinTeam error: %v", err)
	}

	if err := DisbandTeam(db, team); err != nil {
		t.Fatalf("DisbandTeam error: %v", err)
	}

	var teamCount, memberCount, regCount int64
	db.Model(&models.Team{}).Where("id = ?", team.ID).Count(&teamCount)
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)
	db.Model(&models.Registration{}).Where("team_id = ?", team.ID).Count(&regCount)
	if teamCount != 0 || memberCount != 0 || regCount != 0 {
		t.Fatalf("disband left rows behind: teams=%d members=%d regs=%d", teamCount, memberCount, regCount)
	}
}

func TestEventCapacity_CountsTeamRegistrations(t *testing.T) {
	db := newTestDB(t)
	ev := mustCreateEvent(t, db, models.Event{RegistrationType: models.RegistrationTeam, Capacity: 2})

	leader := mustCreateUser(t, db, "tc-leader@gmail.com")
	m1 := mustCreateUser(t, db, "tc-m1@gmail.com")
	m2 := mustCreateUser(t, db, "tc-m2@gmail.com")

	team, _, err := CreateTeam(db, leader.ID, ev.ID, "Juliet", "")
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, m1.ID, ev.ID, team.JoinCode); err != nil {
		t.Fatalf("JoinTeam error: %v", err)
	}
	if _, _, err := JoinTeam(db, m2.ID, ev.ID, team.JoinCode); !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull when event capacity is reached, got %v", err)
	}
}
