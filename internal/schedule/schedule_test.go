package schedule

import (
	"errors"
	"testing"
	"time"
)

// TestCompose_Boundaries проверяет полдень, полночь и послеобеденные часы.
func TestCompose_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		slot     Slot
		wantHour int
		wantMin  int
	}{
		{"12 AM — полночь", Slot{Date: "2025-03-10", Hour: 12, Minute: "00", Meridiem: AM}, 0, 0},
		{"12 PM — полдень", Slot{Date: "2025-03-10", Hour: 12, Minute: "00", Meridiem: PM}, 12, 0},
		{"1 PM — 13:00", Slot{Date: "2025-03-10", Hour: 1, Minute: "00", Meridiem: PM}, 13, 0},
		{"11 AM без сдвига", Slot{Date: "2025-03-10", Hour: 11, Minute: "45", Meridiem: AM}, 11, 45},
		{"6 PM по умолчанию", Slot{Date: "2025-03-10", Hour: 6, Minute: "30", Meridiem: PM}, 18, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.slot, time.UTC)
			if err != nil {
				t.Fatalf("Compose() ошибка: %v", err)
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMin {
				t.Errorf("Compose() = %02d:%02d, ожидается %02d:%02d",
					got.Hour(), got.Minute(), tt.wantHour, tt.wantMin)
			}
			if got.Format(DateLayout) != tt.slot.Date {
				t.Errorf("дата = %s, ожидается %s", got.Format(DateLayout), tt.slot.Date)
			}
		})
	}
}

// TestCompose_EmptyDate проверяет, что без даты сохранение блокируется.
func TestCompose_EmptyDate(t *testing.T) {
	got, err := Compose(Slot{Hour: 6, Minute: "00", Meridiem: PM}, time.UTC)
	if !errors.Is(err, ErrNoDate) {
		t.Fatalf("ожидалась ErrNoDate, получена %v", err)
	}
	if !got.IsZero() {
		t.Errorf("ожидался нулевой time.Time, получен %v", got)
	}
}

// TestCompose_Invalid проверяет отказ на значениях вне сетки.
func TestCompose_Invalid(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want error
	}{
		{"час 0", Slot{Date: "2025-01-01", Hour: 0, Minute: "00", Meridiem: AM}, ErrInvalidHour},
		{"час 13", Slot{Date: "2025-01-01", Hour: 13, Minute: "00", Meridiem: AM}, ErrInvalidHour},
		{"минута 10", Slot{Date: "2025-01-01", Hour: 1, Minute: "10", Meridiem: AM}, ErrInvalidMinute},
		{"пустой meridiem", Slot{Date: "2025-01-01", Hour: 1, Minute: "00"}, ErrInvalidMeridiem},
		{"кривая дата", Slot{Date: "01/02/2025", Hour: 1, Minute: "00", Meridiem: AM}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compose(tt.slot, time.UTC); !errors.Is(err, tt.want) {
				t.Errorf("Compose() ошибка = %v, ожидается %v", err, tt.want)
			}
		})
	}
}

// TestRoundTrip проверяет Decompose(Compose(s)) == s для всей сетки
// в нескольких часовых поясах.
func TestRoundTrip(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("AST", 3*60*60),
		time.FixedZone("WEST", -5*60*60),
	}
	dates := []string{"2025-01-01", "2025-06-15", "2024-02-29", "2025-12-31"}

	for _, loc := range zones {
		for _, date := range dates {
			for hour := 1; hour <= 12; hour++ {
				for _, minute := range Minutes {
					for _, mer := range []Meridiem{AM, PM} {
						in := Slot{Date: date, Hour: hour, Minute: minute, Meridiem: mer}
						ts, err := Compose(in, loc)
						if err != nil {
							t.Fatalf("Compose(%+v) ошибка: %v", in, err)
						}
						// Метка проходит через UTC, как при обмене с backend
						out := Decompose(ts.UTC(), loc)
						if out != in {
							t.Errorf("[%s] round-trip %+v → %+v", loc, in, out)
						}
					}
				}
			}
		}
	}
}

// TestDecompose_Minutes проверяет дополнение минуты нулём.
func TestDecompose_Minutes(t *testing.T) {
	ts := time.Date(2025, 5, 1, 0, 5, 0, 0, time.UTC)
	got := Decompose(ts, time.UTC)
	if got.Minute != "05" {
		t.Errorf("Minute = %q, ожидается %q", got.Minute, "05")
	}
	if got.Hour != 12 || got.Meridiem != AM {
		t.Errorf("Hour/Meridiem = %d/%s, ожидается 12/AM", got.Hour, got.Meridiem)
	}
}

// TestParseMeridiem проверяет латинские и арабские обозначения.
func TestParseMeridiem(t *testing.T) {
	tests := map[string]Meridiem{"AM": AM, "ص": AM, "pm": PM, "م": PM}
	for in, want := range tests {
		got, err := ParseMeridiem(in)
		if err != nil || got != want {
			t.Errorf("ParseMeridiem(%q) = %q, %v; ожидается %q", in, got, err, want)
		}
	}
	if _, err := ParseMeridiem("noon"); !errors.Is(err, ErrInvalidMeridiem) {
		t.Errorf("ожидалась ErrInvalidMeridiem, получена %v", err)
	}
}

// TestDefaultSlot проверяет значения новой формы.
func TestDefaultSlot(t *testing.T) {
	s := DefaultSlot()
	if s.Date != "" || s.HourLabel() != "06" || s.Minute != "00" || s.Meridiem != PM {
		t.Errorf("DefaultSlot() = %+v", s)
	}
	if PM.Label() != "م" || AM.Label() != "ص" {
		t.Errorf("Label() = %q/%q", AM.Label(), PM.Label())
	}
}
