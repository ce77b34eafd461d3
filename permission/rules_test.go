package permission

import "testing"

type fakeIdentity struct {
	subject string
	admin   bool
}

func (f *fakeIdentity) Authenticated() bool { return f != nil }

func (f *fakeIdentity) Subject() string {
	if f == nil {
		return ""
	}
	return f.subject
}

func (f *fakeIdentity) IsAdmin() bool { return f != nil && f.admin }

func TestAdminOnly(t *testing.T) {
	var typedNil *fakeIdentity

	tests := []struct {
		name string
		id   Identity
		want Decision
	}{
		{"absent", nil, Deny},
		{"typed nil", typedNil, Deny},
		{"standard", &fakeIdentity{subject: "u1"}, Deny},
		{"administrator", &fakeIdentity{subject: "u1", admin: true}, Permit},
	}
	for _, tt := range tests {
		if got := AdminOnly(tt.id); got != tt.want {
			t.Fatalf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestSelfOnly(t *testing.T) {
	u1 := &fakeIdentity{subject: "u1"}
	admin := &fakeIdentity{subject: "root", admin: true}

	tests := []struct {
		name   string
		id     Identity
		target string
		want   Decision
	}{
		{"same subject", u1, "u1", Permit},
		{"other subject", u1, "u2", Deny},
		{"absent", nil, "u1", Deny},
		{"empty target", u1, "", Deny},
		{"admin is not self", admin, "u1", Deny},
	}
	for _, tt := range tests {
		if got := SelfOnly(tt.id, tt.target); got != tt.want {
			t.Fatalf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestDecisionAllowed(t *testing.T) {
	if !Permit.Allowed() || Deny.Allowed() {
		t.Fatal("unexpected Allowed mapping")
	}
}
