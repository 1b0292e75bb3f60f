package orchestrators

import (
	"context"
	"errors"
	"testing"

	"greenaudit/internal/domain/account"
)

type fakeAccountStore struct {
	byEmail map[string]account.Account
	saveErr error
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return account.Account{}, errors.New("account not found")
	}
	return a, nil
}

func (f *fakeAccountStore) Save(_ context.Context, a account.Account) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]account.Account{}
	}
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAccountStore) Count(_ context.Context) (int, error) {
	return len(f.byEmail), nil
}

// TestExecuteCreateAccount_Success verifies account creation with a hashed
// password.
func TestExecuteCreateAccount_Success(t *testing.T) {
	store := &fakeAccountStore{}
	id, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		Email:    "auditor@greenaudit.ie",
		Password: "a sufficiently long one",
		Role:     account.RoleAuditor,
	}, CreateAccountDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("ExecuteCreateAccount: %v", err)
	}
	if id == "" {
		t.Error("id is empty")
	}

	saved := store.byEmail["auditor@greenaudit.ie"]
	if saved.Role != account.RoleAuditor {
		t.Errorf("Role = %q", saved.Role)
	}
	if saved.PasswordHash == "" || saved.PasswordHash == "a sufficiently long one" {
		t.Error("password not hashed")
	}
	if err := saved.CheckPassword("a sufficiently long one"); err != nil {
		t.Errorf("CheckPassword = %v", err)
	}
}

// TestExecuteCreateAccount_Rejections verifies the input checks.
func TestExecuteCreateAccount_Rejections(t *testing.T) {
	existing := &fakeAccountStore{byEmail: map[string]account.Account{
		"taken@x.ie": {Email: "taken@x.ie"},
	}}

	cases := []struct {
		name    string
		input   CreateAccountInput
		wantErr error
	}{
		{"empty email", CreateAccountInput{Password: "long enough password", Role: account.RoleAdmin}, account.ErrEmptyEmail},
		{"duplicate email", CreateAccountInput{Email: "taken@x.ie", Password: "long enough password", Role: account.RoleAdmin}, ErrEmailAlreadyExists},
		{"bad role", CreateAccountInput{Email: "a@b.ie", Password: "long enough password", Role: "root"}, account.ErrInvalidRole},
		{"short password", CreateAccountInput{Email: "a@b.ie", Password: "short", Role: account.RoleAdmin}, account.ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExecuteCreateAccount(context.Background(), tc.input, CreateAccountDeps{AccountStore: existing})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestExecuteSeedAdmin verifies seeding runs once and only on an empty store.
func TestExecuteSeedAdmin(t *testing.T) {
	store := &fakeAccountStore{}
	deps := CreateAccountDeps{AccountStore: store}

	if err := ExecuteSeedAdmin(context.Background(), deps, "admin@greenaudit.ie", "change me before launch"); err != nil {
		t.Fatalf("ExecuteSeedAdmin: %v", err)
	}
	seeded := store.byEmail["admin@greenaudit.ie"]
	if seeded.Role != account.RoleAdmin {
		t.Errorf("seeded Role = %q, want admin", seeded.Role)
	}

	// A second run is a no-op, even with different credentials
	if err := ExecuteSeedAdmin(context.Background(), deps, "other@greenaudit.ie", "change me before launch"); err != nil {
		t.Fatalf("second ExecuteSeedAdmin: %v", err)
	}
	if len(store.byEmail) != 1 {
		t.Errorf("store has %d accounts after re-seed, want 1", len(store.byEmail))
	}
}
