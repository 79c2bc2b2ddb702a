package features

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"08:00", Clock{8, 0, 0}, false},
		{"08:00:00", Clock{8, 0, 0}, false},
		{"23:59", Clock{23, 59, 0}, false},
		{"00:00", Clock{0, 0, 0}, false},
		{"11:30:45", Clock{11, 30, 45}, false},
		{"25:99", Clock{}, true},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"noon", Clock{}, true},
		{"", Clock{}, true},
		{"8:00", Clock{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseClock_SecondsAreOptional(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 1, 15, 30, 59} {
			short := Clock{Hour: h, Minute: m}.String()[:5]
			long := short + ":00"

			a, err := ParseClock(short)
			if err != nil {
				t.Fatalf("ParseClock(%q) error = %v", short, err)
			}
			b, err := ParseClock(long)
			if err != nil {
				t.Fatalf("ParseClock(%q) error = %v", long, err)
			}
			if a.MinuteOfDay() != b.MinuteOfDay() {
				t.Errorf("%q and %q disagree: %d vs %d", short, long, a.MinuteOfDay(), b.MinuteOfDay())
			}
		}
	}
}

func TestScheduledDuration(t *testing.T) {
	tests := []struct {
		name     string
		dep, arr Clock
		want     int
	}{
		{"same day", Clock{Hour: 8}, Clock{Hour: 11, Minute: 30}, 210},
		{"overnight", Clock{Hour: 23, Minute: 15}, Clock{Hour: 1, Minute: 5}, 110},
		{"equal times", Clock{Hour: 9}, Clock{Hour: 9}, 0},
		{"one minute before", Clock{Hour: 9, Minute: 1}, Clock{Hour: 9}, 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScheduledDuration(tt.dep, tt.arr); got != tt.want {
				t.Errorf("ScheduledDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScheduledDuration_NeverNegative(t *testing.T) {
	for dep := 0; dep < 1440; dep += 17 {
		for arr := 0; arr < 1440; arr += 13 {
			d := ScheduledDuration(Clock{Hour: dep / 60, Minute: dep % 60}, Clock{Hour: arr / 60, Minute: arr % 60})
			want := ((arr-dep)%1440 + 1440) % 1440
			if d != want {
				t.Fatalf("dep=%d arr=%d: got %d, want %d", dep, arr, d, want)
			}
		}
	}
}
