package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		username string
		valid    bool
	}{
		{"ayesha", true},
		{"user_42", true},
		{"a-b-c", true},
		{"ab", false},
		{"has space", false},
		{"semi;colon", false},
		{"waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong", false},
	}

	for _, tc := range cases {
		ok, msg := ValidateUsername(tc.username)
		if ok != tc.valid {
			t.Errorf("ValidateUsername(%q) = %v (%s), want %v", tc.username, ok, msg, tc.valid)
		}
		if !ok && msg == "" {
			t.Errorf("ValidateUsername(%q) rejected without a message", tc.username)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00 world  "); got != "hello world" {
		t.Errorf("SanitizeString = %q, want %q", got, "hello world")
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Role  string `validate:"oneof=student institute"`
	}

	v := NewValidator()

	if err := v.ValidateStruct(payload{Email: "a@b.com", Role: "student"}); err != nil {
		t.Errorf("expected valid payload, got %v", err)
	}
	if err := v.ValidateStruct(payload{Email: "not-an-email", Role: "student"}); err == nil {
		t.Error("expected email validation failure")
	}
	if err := v.ValidateStruct(payload{Email: "a@b.com", Role: "admin"}); err == nil {
		t.Error("expected role validation failure")
	}
}
