package admin

import "testing"

func TestUserOrderBy(t *testing.T) {
	cases := []struct {
		name string
		sort string
		dir  string
		want string
	}{
		{"defaults", "", "", "created_at desc"},
		{"username ascending", "username", "asc", "username asc"},
		{"email descending", "email", "desc", "email desc"},
		{"role sort", "role", "asc", "role asc"},
		{"unknown column falls back", "password_hash", "asc", "created_at asc"},
		{"injection attempt falls back", "created_at; DROP TABLE users--", "asc", "created_at asc"},
		{"injection in direction falls back", "username", "asc; DROP TABLE users--", "username desc"},
		{"unknown direction falls back", "username", "sideways", "username desc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := userOrderBy(tc.sort, tc.dir); got != tc.want {
				t.Errorf("userOrderBy(%q, %q) = %q, want %q", tc.sort, tc.dir, got, tc.want)
			}
		})
	}
}
