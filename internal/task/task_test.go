//nolint:testpackage // Tests require internal access for thorough testing
package task

import (
	"slices"
	"testing"
)

func TestIsValidPriority(t *testing.T) {
	tests := []struct {
		priority Priority
		valid    bool
	}{
		{PriorityHigh, true},
		{PriorityMedium, true},
		{PriorityLow, true},
		{Priority("critical"), false},
		{Priority("HIGH"), false},
		{Priority(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := IsValidPriority(tt.priority); got != tt.valid {
				t.Errorf("IsValidPriority(%q) = %v, want %v", tt.priority, got, tt.valid)
			}
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"high", PriorityHigh},
		{"medium", PriorityMedium},
		{"low", PriorityLow},
		{"  High ", PriorityHigh},
		{"LOW", PriorityLow},
		{"", PriorityMedium},
		{"urgent", PriorityMedium},
		{"3", PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePriority(tt.input); got != tt.want {
				t.Errorf("NormalizePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPriorityOrder(t *testing.T) {
	if PriorityOrder(PriorityHigh) != 1 || PriorityOrder(PriorityMedium) != 2 || PriorityOrder(PriorityLow) != 3 {
		t.Errorf("ranks = %d/%d/%d, want 1/2/3",
			PriorityOrder(PriorityHigh), PriorityOrder(PriorityMedium), PriorityOrder(PriorityLow))
	}
	if PriorityOrder(Priority("bogus")) != PriorityOrder(PriorityMedium) {
		t.Error("unknown priority should rank as medium")
	}
}

func TestStatusAndDue(t *testing.T) {
	due := "2025-07-01"
	open := Task{Description: "a", DueDate: &due}
	closed := Task{Description: "b", Done: true}

	if open.Status() != "not done" {
		t.Errorf("Status() = %q, want %q", open.Status(), "not done")
	}
	if closed.Status() != "done" {
		t.Errorf("Status() = %q, want %q", closed.Status(), "done")
	}
	if open.Due() != due {
		t.Errorf("Due() = %q, want %q", open.Due(), due)
	}
	if closed.Due() != "" {
		t.Errorf("Due() = %q, want empty", closed.Due())
	}
}

func TestClone(t *testing.T) {
	due := "tomorrow"
	orig := Task{Description: "a", DueDate: &due}
	c := orig.Clone()
	*c.DueDate = "changed"
	if *orig.DueDate != "tomorrow" {
		t.Errorf("Clone shares DueDate with original: %q", *orig.DueDate)
	}
}

func TestCompareStable(t *testing.T) {
	tasks := []*Task{
		{Description: "A", Priority: PriorityLow},
		{Description: "B", Priority: PriorityHigh},
		{Description: "C", Priority: PriorityHigh, Done: true},
		{Description: "D", Priority: PriorityMedium},
		{Description: "E", Priority: PriorityHigh},
	}
	slices.SortStableFunc(tasks, Compare)

	var got []string
	for _, tk := range tasks {
		got = append(got, tk.Description)
	}
	want := []string{"B", "E", "C", "D", "A"}
	if !slices.Equal(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}
