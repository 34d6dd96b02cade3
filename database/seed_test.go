package database

import "testing"

func TestAdminSeedPassword(t *testing.T) {
	cases := []struct {
		name     string
		goEnv    string
		password string
		want     string
		wantOK   bool
	}{
		{"development fallback", "development", "", "changeme-admin", true},
		{"unset env fallback", "", "", "changeme-admin", true},
		{"explicit password", "development", "s3cret-admin-pw", "s3cret-admin-pw", true},
		{"production refuses fallback", "production", "", "", false},
		{"production with explicit password", "production", "s3cret-admin-pw", "s3cret-admin-pw", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GO_ENV", tc.goEnv)
			t.Setenv("ADMIN_PASSWORD", tc.password)

			got, ok := adminSeedPassword()
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("adminSeedPassword() = (%q, %v), want (%q, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
