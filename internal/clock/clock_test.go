package clock

import (
	"testing"
	"time"
)

func TestNow_ReturnsCurrentTime(t *testing.T) {
	before := time.Now()
	result := Now()
	after := time.Now()

	if result.Before(before) || result.After(after) {
		t.Errorf("Now() returned %v, expected between %v and %v", result, before, after)
	}
}

func TestMockClock_Now(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	if got := mock.Now(); !got.Equal(mockTime) {
		t.Errorf("MockClock.Now() returned %v, expected exactly %v", got, mockTime)
	}
}

func TestMockClock_Advance(t *testing.T) {
	mockTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mock := NewMockClock(mockTime)

	start := mock.Now()
	mock.Advance(250 * time.Millisecond)

	if got := mock.Since(start); got != 250*time.Millisecond {
		t.Errorf("Since() after Advance = %v, expected 250ms", got)
	}
}

func TestMockClock_Set(t *testing.T) {
	mock := NewMockClock(time.Time{})
	target := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.Set(target)

	if got := mock.Now(); !got.Equal(target) {
		t.Errorf("After Set, Now() = %v, expected %v", got, target)
	}
}

func TestDefault_Swappable(t *testing.T) {
	orig := Default
	defer func() { Default = orig }()

	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	Default = NewMockClock(fixed)

	if got := Now(); !got.Equal(fixed) {
		t.Errorf("Now() with mock Default = %v, expected %v", got, fixed)
	}
}
