package institute

import "testing"

func TestPageParams(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "1", "10", 1, 10},
		{"explicit values", "3", "25", 3, 25},
		{"zero page floors to one", "0", "10", 1, 10},
		{"negative page floors to one", "-5", "10", 1, 10},
		{"zero limit falls back", "1", "0", 1, 10},
		{"negative limit falls back", "1", "-1", 1, 10},
		{"limit over cap falls back", "1", "500", 1, 10},
		{"unparsable page floors to one", "abc", "10", 1, 10},
		{"unparsable limit falls back", "1", "abc", 1, 10},
		{"max limit kept", "2", "100", 2, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := pageParams(tc.page, tc.limit)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Errorf("pageParams(%q, %q) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}
