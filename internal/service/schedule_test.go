package service

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: "9:30", wantErr: true},
		{input: "24:00", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "0930", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseTimeOfDay(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseTimeOfDay(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseTimeOfDay(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseTimeOfDay(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	if got := formatTimeOfDay(570); got != "09:30" {
		t.Fatalf("formatTimeOfDay(570) = %s", got)
	}
	if got := formatTimeOfDay(0); got != "00:00" {
		t.Fatalf("formatTimeOfDay(0) = %s", got)
	}
}

func TestTimeRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{name: "identical", aStart: 600, aEnd: 660, bStart: 600, bEnd: 660, want: true},
		{name: "partial_overlap", aStart: 600, aEnd: 660, bStart: 630, bEnd: 690, want: true},
		{name: "contained", aStart: 600, aEnd: 720, bStart: 630, bEnd: 660, want: true},
		{name: "back_to_back", aStart: 600, aEnd: 660, bStart: 660, bEnd: 720, want: false},
		{name: "back_to_back_reversed", aStart: 660, aEnd: 720, bStart: 600, bEnd: 660, want: false},
		{name: "disjoint", aStart: 600, aEnd: 660, bStart: 720, bEnd: 780, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := timeRangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("overlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolveTimeRange(t *testing.T) {
	startMin, endMin, endTime, err := resolveTimeRange("10:00", "", 90)
	if err != nil {
		t.Fatalf("resolve with duration: %v", err)
	}
	if startMin != 600 || endMin != 690 || endTime != "11:30" {
		t.Fatalf("unexpected range: %d %d %s", startMin, endMin, endTime)
	}

	_, endMin, endTime, err = resolveTimeRange("10:00", "12:00", 90)
	if err != nil {
		t.Fatalf("resolve with explicit end: %v", err)
	}
	if endMin != 720 || endTime != "12:00" {
		t.Fatalf("explicit end not kept: %d %s", endMin, endTime)
	}

	if _, _, _, err := resolveTimeRange("10:00", "10:00", 0); err != ErrInvalidTimeRange {
		t.Fatalf("end equal to start should fail, got %v", err)
	}
	if _, _, _, err := resolveTimeRange("10:00", "09:00", 0); err != ErrInvalidTimeRange {
		t.Fatalf("end before start should fail, got %v", err)
	}
	if _, _, _, err := resolveTimeRange("10:00", "", 0); err != ErrInvalidTimeRange {
		t.Fatalf("missing end without duration should fail, got %v", err)
	}
	// 跨天推算拒绝
	if _, _, _, err := resolveTimeRange("23:30", "", 60); err != ErrInvalidTimeRange {
		t.Fatalf("overnight range should fail, got %v", err)
	}
}
