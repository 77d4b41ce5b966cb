package service

import (
	"errors"
	"testing"
	"time"

	"teamtasks/common"
	"teamtasks/model"
)

func TestBootstrapIsOneTime(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)

	first, err := users.Bootstrap("Admin One", "Admin", "pass")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if first.Role != common.RoleManager {
		t.Fatalf("bootstrap role = %q, want manager", first.Role)
	}
	if first.Username != "admin" {
		t.Fatalf("username not normalized: %q", first.Username)
	}

	if _, err = users.Bootstrap("Second", "second", "pass"); !errors.Is(err, ErrBootstrapClosed) {
		t.Fatalf("second bootstrap: got %v, want ErrBootstrapClosed", err)
	}
}

func TestAuthenticateIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)

	created := mustUser(t, users, "Admin One", "Admin", "pass", common.RoleManager)

	for _, username := range []string{"admin", "ADMIN", "  Admin  "} {
		got, err := users.Authenticate(username, "pass")
		if err != nil {
			t.Fatalf("authenticate %q: %v", username, err)
		}
		if got.ID != created.ID {
			t.Fatalf("authenticate %q resolved wrong user", username)
		}
	}

	if _, err := users.Authenticate("admin", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: got %v, want ErrBadCredentials", err)
	}
	if _, err := users.Authenticate("ghost", "pass"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown user: got %v, want ErrBadCredentials", err)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)

	mustUser(t, users, "Alice", "alice", "pw", common.RoleMember)
	if _, err := users.Create("Imposter", "  ALICE ", "pw", common.RoleMember); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
}

func TestDeleteUserCascadesAndRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)
	tasks := NewTaskService(db)

	manager := mustUser(t, users, "Manager", "manager", "pw", common.RoleManager)
	victim := mustUser(t, users, "Victim", "victim", "pw", common.RoleMember)

	assigned := mustTask(t, tasks, "assigned to victim", nil, &victim.ID, nil)
	if _, err := tasks.AddNote(assigned.ID, manager.ID, "on their task"); err != nil {
		t.Fatalf("add note: %v", err)
	}
	other := mustTask(t, tasks, "someone else's", nil, &manager.ID, nil)
	if _, err := tasks.AddNote(other.ID, victim.ID, "authored by victim"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	if err := users.Delete(manager.ID, manager.ID); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("self delete: got %v, want ErrSelfDelete", err)
	}

	if err := users.Delete(manager.ID, victim.ID); err != nil {
		t.Fatalf("delete victim: %v", err)
	}

	if _, err := tasks.Get(assigned.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("assigned task should be gone, got %v", err)
	}
	if _, err := tasks.Get(other.ID); err != nil {
		t.Fatalf("unassigned task should survive: %v", err)
	}
	var authored int64
	if err := db.Model(&model.Note{}).Where("author_id = ?", victim.ID).Count(&authored).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if authored != 0 {
		t.Fatalf("notes authored by deleted user remain: %d", authored)
	}
	if got := countRows(t, db, &model.Note{}); got != 0 {
		t.Fatalf("orphaned notes = %d", got)
	}

	if err := users.Delete(manager.ID, victim.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete again: got %v, want ErrNotFound", err)
	}
}

func TestPasswordResetSingleUse(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)

	mustUser(t, users, "Alice", "alice", "oldpw", common.RoleMember)

	reset, err := users.CreateReset("ALICE")
	if err != nil || reset == nil {
		t.Fatalf("create reset: %v, %v", reset, err)
	}

	if err := users.CompleteReset(reset.Token, "newpw", "different"); !errors.Is(err, ErrPasswordMatch) {
		t.Fatalf("mismatched passwords: got %v, want ErrPasswordMatch", err)
	}

	if err := users.CompleteReset(reset.Token, "newpw", "newpw"); err != nil {
		t.Fatalf("complete reset: %v", err)
	}
	if _, err := users.Authenticate("alice", "newpw"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := users.Authenticate("alice", "oldpw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("old password still works")
	}

	// token is burned
	if err := users.CompleteReset(reset.Token, "again", "again"); !errors.Is(err, ErrBadToken) {
		t.Fatalf("token reuse: got %v, want ErrBadToken", err)
	}
	if _, err := users.ValidateReset(reset.Token); !errors.Is(err, ErrBadToken) {
		t.Fatalf("validate used token: got %v, want ErrBadToken", err)
	}
}

func TestPasswordResetExpiry(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)

	mustUser(t, users, "Alice", "alice", "pw", common.RoleMember)

	reset, err := users.CreateReset("alice")
	if err != nil || reset == nil {
		t.Fatalf("create reset: %v, %v", reset, err)
	}
	if until := time.Until(reset.ExpiresAt); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("expiry window = %v, want ~24h", until)
	}

	expired := time.Now().Add(-time.Minute)
	if err := db.Model(&model.PasswordReset{}).Where("id = ?", reset.ID).UpdateColumn("expires_at", expired).Error; err != nil {
		t.Fatalf("expire token: %v", err)
	}

	if _, err := users.ValidateReset(reset.Token); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expired token: got %v, want ErrBadToken", err)
	}
	if err := users.CompleteReset(reset.Token, "pw2", "pw2"); !errors.Is(err, ErrBadToken) {
		t.Fatalf("complete with expired token: got %v, want ErrBadToken", err)
	}
}

func TestCreateResetUnknownUserIsSilent(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)

	reset, err := users.CreateReset("nobody")
	if err != nil {
		t.Fatalf("unknown user reset errored: %v", err)
	}
	if reset != nil {
		t.Fatalf("unknown user got a reset token")
	}
	if got := countRows(t, db, &model.PasswordReset{}); got != 0 {
		t.Fatalf("reset rows = %d, want 0", got)
	}
}
