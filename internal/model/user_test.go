package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUser_SessionStripsPassword(t *testing.T) {
	u := &User{ID: "u1", Name: "Perry", Email: "perry@perryhq.com", Role: RoleAdmin, Password: "perry123"}

	sess := u.Session()
	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	if strings.Contains(string(data), "perry123") {
		t.Errorf("session serialization leaks the password: %s", data)
	}

	// The user record itself also never serializes its password.
	data, err = json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(data), "perry123") {
		t.Errorf("user serialization leaks the password: %s", data)
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := SessionUser{ID: "u1", Role: RoleAdmin}
	manager := SessionUser{ID: "u2", Role: RoleManager}

	if err := RequireAdmin(admin); err != nil {
		t.Errorf("RequireAdmin(admin) error: %v", err)
	}
	if err := RequireAdmin(manager); err == nil {
		t.Error("RequireAdmin(manager) did not fail")
	}
	if err := RequireAdmin(SessionUser{}); err == nil {
		t.Error("RequireAdmin(anonymous) did not fail")
	}
}
