package pages

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

// field — описание поля ввода формы.
type field struct {
	label       string // ключ перевода подписи
	name        string
	value       string
	typ         string // text по умолчанию
	placeholder string
	required    bool
	ltr         bool // адреса, email, коды цветов
	attrs       templ.Attributes
}

func (f field) inputType() string {
	if f.typ == "" {
		return "text"
	}
	return f.typ
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func stringOptions(values []string) []model.Option {
	opts := make([]model.Option, len(values))
	for i, v := range values {
		opts[i] = model.Option{Value: v, Label: v}
	}
	return opts
}

func swatchStyle(color string) string {
	return "background:" + color
}

func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var numberPrinter = message.NewPrinter(language.English)

// FormatPrice форматирует сумму с разделителями тысяч и валютой: "25,000 د.ع".
func FormatPrice(ctx context.Context, v float64) string {
	var s string
	if v == math.Trunc(v) {
		s = numberPrinter.Sprintf("%d", int64(v))
	} else {
		s = numberPrinter.Sprintf("%.2f", v)
	}
	return s + " " + t(ctx, "currency")
}

// FormatTime форматирует момент времени в часовом поясе loc; nil — "-".
func FormatTime(ts *time.Time, loc *time.Location) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format("2006-01-02 15:04")
}

// FormatSlot форматирует время матча в 12-часовом виде: "2025-03-10 06:00 م".
func FormatSlot(ts *time.Time, loc *time.Location) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	s := schedule.Decompose(*ts, loc)
	return s.Date + " " + s.HourLabel() + ":" + s.Minute + " " + s.Meridiem.Label()
}
