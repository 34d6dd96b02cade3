package services

import "testing"

func TestGroupByDepartment(t *testing.T) {
	rows := []ProgramListing{
		{ProgramID: 1, ProgramName: "BSCS", Department: "Computer Science", InstituteID: 1},
		{ProgramID: 2, ProgramName: "MSCS", Department: "Computer Science", InstituteID: 1},
		{ProgramID: 3, ProgramName: "BBA", Department: "Business", InstituteID: 2},
		{ProgramID: 4, ProgramName: "BSSE", Department: "Computer Science", InstituteID: 2},
	}

	groups := groupByDepartment(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// First-seen department order is preserved.
	if groups[0].Department != "Computer Science" {
		t.Errorf("expected first group Computer Science, got %q", groups[0].Department)
	}
	if groups[1].Department != "Business" {
		t.Errorf("expected second group Business, got %q", groups[1].Department)
	}

	if len(groups[0].Programs) != 3 {
		t.Errorf("expected 3 programs in Computer Science, got %d", len(groups[0].Programs))
	}
	if len(groups[1].Programs) != 1 {
		t.Errorf("expected 1 program in Business, got %d", len(groups[1].Programs))
	}

	if groups[0].Programs[2].ProgramID != 4 {
		t.Errorf("expected program 4 last in Computer Science, got %d", groups[0].Programs[2].ProgramID)
	}
}

func TestGroupByDepartmentEmpty(t *testing.T) {
	groups := groupByDepartment(nil)
	if groups == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(groups) != 0 {
		t.Fatalf("expected 0 groups, got %d", len(groups))
	}
}
