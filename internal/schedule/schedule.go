// Пакет schedule — преобразование времени начала матча между 12-часовым
// вводом оператора (дата, час 1-12, минута, ص/م) и абсолютной меткой времени.
//
// Вся арифметика полудня/полуночи сосредоточена здесь: Compose и Decompose
// взаимно обратны для всех значений сетки (час 1..12, минута 00/15/30/45).
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout — формат календарной даты в форме (input type=date).
const DateLayout = "2006-01-02"

// Meridiem — индикатор половины суток.
type Meridiem string

const (
	// AM — до полудня (ص).
	AM Meridiem = "AM"
	// PM — после полудня (م).
	PM Meridiem = "PM"
)

// Label возвращает арабское обозначение: ص или م.
func (m Meridiem) Label() string {
	if m == AM {
		return "ص"
	}
	return "م"
}

// Minutes — допустимые значения минут в форме.
var Minutes = []string{"00", "15", "30", "45"}

// Ошибки композиции.
var (
	// ErrNoDate — дата не выбрана, сохранять нельзя.
	ErrNoDate = errors.New("schedule: дата не выбрана")
	// ErrInvalidDate — дата не в формате YYYY-MM-DD.
	ErrInvalidDate = errors.New("schedule: некорректная дата")
	// ErrInvalidHour — час вне диапазона 1-12.
	ErrInvalidHour = errors.New("schedule: час вне диапазона 1-12")
	// ErrInvalidMinute — минута не из сетки 00/15/30/45.
	ErrInvalidMinute = errors.New("schedule: минута вне сетки 00/15/30/45")
	// ErrInvalidMeridiem — неизвестный индикатор AM/PM.
	ErrInvalidMeridiem = errors.New("schedule: неизвестный индикатор AM/PM")
)

// Slot — время матча в том виде, в каком его вводит оператор.
type Slot struct {
	// Date — календарная дата YYYY-MM-DD; пустая строка — дата не выбрана.
	Date string
	// Hour — час в 12-часовом формате (1..12).
	Hour int
	// Minute — минута из сетки Minutes.
	Minute string
	// Meridiem — AM (ص) или PM (م).
	Meridiem Meridiem
}

// DefaultSlot — значение для новой формы матча: без даты, 06:00 م.
func DefaultSlot() Slot {
	return Slot{Hour: 6, Minute: "00", Meridiem: PM}
}

// HourLabel возвращает час с ведущим нулём ("06").
func (s Slot) HourLabel() string {
	return fmt.Sprintf("%02d", s.Hour)
}

// Compose собирает локальную метку времени из слота в часовом поясе loc.
// PM и час < 12 — прибавляется 12; AM и час 12 — полночь (0).
// Пустая дата возвращает ErrNoDate: вызывающий код обязан заблокировать сохранение.
func Compose(s Slot, loc *time.Location) (time.Time, error) {
	if s.Date == "" {
		return time.Time{}, ErrNoDate
	}
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation(DateLayout, s.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s.Date)
	}
	if s.Hour < 1 || s.Hour > 12 {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidHour, s.Hour)
	}
	minute, err := parseMinute(s.Minute)
	if err != nil {
		return time.Time{}, err
	}

	hour := s.Hour
	switch s.Meridiem {
	case PM:
		if hour < 12 {
			hour += 12
		}
	case AM:
		if hour == 12 {
			hour = 0
		}
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMeridiem, s.Meridiem)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// Decompose раскладывает метку времени обратно в слот формы.
// Дата и час берутся в поясе loc, чтобы Decompose(Compose(s)) == s.
func Decompose(t time.Time, loc *time.Location) Slot {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)

	hour := local.Hour()
	meridiem := AM
	if hour >= 12 {
		meridiem = PM
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return Slot{
		Date:     local.Format(DateLayout),
		Hour:     hour,
		Minute:   fmt.Sprintf("%02d", local.Minute()),
		Meridiem: meridiem,
	}
}

// ParseMeridiem принимает AM/PM в латинице или арабские ص/م.
func ParseMeridiem(v string) (Meridiem, error) {
	switch v {
	case "AM", "am", "ص":
		return AM, nil
	case "PM", "pm", "م":
		return PM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMeridiem, v)
}

// parseMinute проверяет минуту по сетке и возвращает её число.
func parseMinute(v string) (int, error) {
	for _, m := range Minutes {
		if m == v {
			n, _ := strconv.Atoi(v)
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMinute, v)
}
