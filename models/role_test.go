// file: models/role_test.go
package models

import "testing"

func TestDeriveRole(t *testing.T) {
	cases := []struct {
		email string
		want  Role
	}{
		{"alice@staff.university-hub.edu", RoleAdmin},
		{"BOB@STAFF.UNIVERSITY-HUB.EDU", RoleAdmin},
		{"carol@student.university-hub.edu", RoleStudent},
		{"dave@gmail.com", RoleStudent},
		{"eve@staff.university-hub.edu.evil.com", RoleStudent},
		{"not-an-email", RoleStudent},
		{"", RoleStudent},
	}
	for _, tc := range cases {
		if got := DeriveRole(tc.email); got != tc.want {
			t.Fatalf("DeriveRole(%q) = %s, want %s", tc.email, got, tc.want)
		}
	}
}

// president 永远不会从邮箱推导出来
func TestDeriveRole_NeverPresident(t *testing.T) {
	emails := []string{
		"president@staff.university-hub.edu",
		"president@club.university-hub.edu",
		"president@president.edu",
	}
	for _, email := range emails {
		if got := DeriveRole(email); got == RolePresident {
			t.Fatalf("DeriveRole(%q) must never return president", email)
		}
	}
}
