package models

import "testing"

func intPtr(v int) *int { return &v }

func TestCapacityStatus(t *testing.T) {
	for total := 0; total <= 6; total++ {
		for available := 0; available <= total; available++ {
			want := CenterStatusActive
			if total == 0 || available == 0 {
				want = CenterStatusComplete
			}
			if got := CapacityStatus(total, available); got != want {
				t.Errorf("CapacityStatus(%d, %d) = %s, want %s", total, available, got, want)
			}
		}
	}
}

func TestCapacityStatus_ZeroTotalWinsOverAvailable(t *testing.T) {
	// available > total can only come from a trusted direct write
	if got := CapacityStatus(0, 3); got != CenterStatusComplete {
		t.Errorf("got %s, want complete", got)
	}
}

func TestInitialAvailableCapacity(t *testing.T) {
	for _, total := range []int{0, 1, 25} {
		if got := InitialAvailableCapacity(total); got != total {
			t.Errorf("InitialAvailableCapacity(%d) = %d", total, got)
		}
	}
}

func TestResolveAvailableCapacity(t *testing.T) {
	tests := []struct {
		name         string
		oldTotal     int
		oldAvailable int
		newTotal     *int
		newAvailable *int
		want         int
	}{
		{"shrink keeps occupied", 10, 4, intPtr(8), nil, 2},
		{"shrink below occupied clamps", 10, 4, intPtr(5), nil, 0},
		{"grow keeps occupied", 10, 4, intPtr(20), nil, 14},
		{"same total is a no-op", 10, 4, intPtr(10), nil, 4},
		{"to zero", 10, 10, intPtr(0), nil, 0},
		{"from zero", 0, 0, intPtr(7), nil, 7},
		{"new total ignores explicit available", 10, 4, intPtr(8), intPtr(8), 2},
		{"negative occupied treated as zero", 5, 9, intPtr(6), nil, 6},
		{"explicit available trusted", 10, 4, nil, intPtr(9), 9},
		{"nothing supplied keeps old", 10, 4, nil, nil, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAvailableCapacity(tt.oldTotal, tt.oldAvailable, tt.newTotal, tt.newAvailable)
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveAvailableCapacity_KeepsInvariant(t *testing.T) {
	for oldTotal := 0; oldTotal <= 8; oldTotal++ {
		for oldAvailable := 0; oldAvailable <= oldTotal; oldAvailable++ {
			for newTotal := 0; newTotal <= 10; newTotal++ {
				got := ResolveAvailableCapacity(oldTotal, oldAvailable, intPtr(newTotal), nil)
				if got < 0 || got > newTotal {
					t.Fatalf("(%d,%d)->%d: available %d out of [0,%d]", oldTotal, oldAvailable, newTotal, got, newTotal)
				}
				occupied := oldTotal - oldAvailable
				if newTotal >= occupied && newTotal-got != occupied {
					t.Fatalf("(%d,%d)->%d: occupied %d not conserved (got available %d)", oldTotal, oldAvailable, newTotal, occupied, got)
				}
			}
		}
	}
}
