package frontend

import "testing"

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"NEW", "status-new"},
		{"PAID", "status-paid"},
		{"FAILED", "status-failed"},
		// Statuses the client has never seen still get a usable style.
		{"SHIPPED", "status-shipped"},
		{"on_hold", "status-on_hold"},
		{"partially-paid", "status-partially-paid"},
		{" PAID ", "status-paid"},
		// Anything that would produce a malformed class name degrades.
		{"", StyleUnknown},
		{"weird status", StyleUnknown},
		{"статус", StyleUnknown},
		{"a/b", StyleUnknown},
	}
	for _, tt := range tests {
		if got := StatusStyle(tt.status); got != tt.want {
			t.Errorf("StatusStyle(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
