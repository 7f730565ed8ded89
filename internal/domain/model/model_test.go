package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

// decodeKeys возвращает множество ключей JSON-объекта.
func decodeKeys(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	return m
}

// TestCompetitionPayload_CreateFields проверяет состав полей при создании
// соревнования без короткого имени и логотипа.
func TestCompetitionPayload_CreateFields(t *testing.T) {
	d := NewCompetitionDraft()
	d.Name = "Gulf Cup"
	d.Country = "Iraq"
	d.Season = "2025"
	d.Type = CompetitionFootball

	got := decodeKeys(t, d.Payload())
	want := map[string]any{
		"name":    "Gulf Cup",
		"country": "Iraq",
		"season":  "2025",
		"type":    "football",
		"logoUrl": "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload = %v, ожидается %v", got, want)
	}
}

// TestMatchPayload_OptionalFields проверяет, что пустые необязательные поля
// опускаются, а operatorId уходит только при создании.
func TestMatchPayload_OptionalFields(t *testing.T) {
	d := NewMatchDraft()
	d.CompetitionID = "c1"
	d.HomeTeamID = "t1"
	d.AwayTeamID = "t2"
	d.Slot = schedule.Slot{Date: "2025-03-10", Hour: 9, Minute: "30", Meridiem: schedule.PM}
	d.OperatorID = "op1"

	created, err := d.Payload(time.UTC, true)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	keys := decodeKeys(t, created)
	for _, k := range []string{"venue", "referee", "matchday", "season"} {
		if _, ok := keys[k]; ok {
			t.Errorf("поле %q не должно отправляться пустым", k)
		}
	}
	if keys["operatorId"] != "op1" {
		t.Errorf("operatorId = %v, ожидается op1", keys["operatorId"])
	}
	if keys["startTime"] != "2025-03-10T21:30:00.000Z" {
		t.Errorf("startTime = %v", keys["startTime"])
	}
	if keys["isFeatured"] != false {
		t.Errorf("isFeatured должен отправляться всегда")
	}

	updated, err := d.Payload(time.UTC, false)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if _, ok := decodeKeys(t, updated)["operatorId"]; ok {
		t.Error("operatorId не должен отправляться при обновлении")
	}
}

// TestMatchPayload_NoDate проверяет блокировку сохранения без даты.
func TestMatchPayload_NoDate(t *testing.T) {
	d := NewMatchDraft()
	if _, err := d.Payload(time.UTC, true); !errors.Is(err, schedule.ErrNoDate) {
		t.Errorf("ожидалась schedule.ErrNoDate, получена %v", err)
	}
}

// TestMatchDraft_FromRecord проверяет раскладку времени и значения по умолчанию.
func TestMatchDraft_FromRecord(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 15, 0, 0, time.UTC)
	m := Match{ID: "m1", CompetitionID: "c1", StartTime: &start, Matchday: "3"}
	d := m.Draft(time.UTC)
	want := schedule.Slot{Date: "2025-03-10", Hour: 12, Minute: "15", Meridiem: schedule.AM}
	if d.Slot != want {
		t.Errorf("Slot = %+v, ожидается %+v", d.Slot, want)
	}
	if d.Matchday != "3" || d.OperatorID != "" {
		t.Errorf("Matchday/OperatorID = %q/%q", d.Matchday, d.OperatorID)
	}

	empty := Match{}.Draft(time.UTC)
	if empty.Slot != schedule.DefaultSlot() {
		t.Errorf("без startTime ожидается слот по умолчанию, получен %+v", empty.Slot)
	}
}

// TestLooseString проверяет декодирование строки, числа и null.
func TestLooseString(t *testing.T) {
	var m struct {
		A LooseString `json:"a"`
		B LooseString `json:"b"`
		C LooseString `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2025","b":2026,"c":null}`), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.A != "2025" || m.B != "2026" || m.C != "" {
		t.Errorf("получено %q %q %q", m.A, m.B, m.C)
	}
}

// TestStringList проверяет массив и массив, закодированный строкой.
func TestStringList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"массив", `{"v":["M","L"]}`, StringList{"M", "L"}},
		{"строка", `{"v":"[\"#000000\",\"#FFFFFF\"]"}`, StringList{"#000000", "#FFFFFF"}},
		{"null", `{"v":null}`, nil},
		{"пустая строка", `{"v":""}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m struct {
				V StringList `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.in), &m); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(m.V, tt.want) {
				t.Errorf("получено %v, ожидается %v", m.V, tt.want)
			}
		})
	}
}

// TestProductDraft проверяет значения по умолчанию и опускание пустых списков.
func TestProductDraft(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":"p1","name":"Shirt","sizes":"[\"M\"]","discount":20}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	d := p.Draft()
	if !d.InStock || !d.IsActive {
		t.Error("отсутствующие inStock/isActive должны трактоваться как true")
	}
	if d.Emoji != DefaultProductEmoji {
		t.Errorf("Emoji = %q", d.Emoji)
	}
	if d.Discount != "20" {
		t.Errorf("Discount = %q", d.Discount)
	}

	keys := decodeKeys(t, d.Payload())
	if _, ok := keys["colors"]; ok {
		t.Error("пустой colors не должен отправляться")
	}
	if _, ok := keys["sizes"]; !ok {
		t.Error("непустой sizes должен отправляться")
	}
}

// TestProduct_Matches проверяет клиентский поиск по трём именам.
func TestProduct_Matches(t *testing.T) {
	p := Product{Name: "Home Shirt", NameAr: "قميص", NameKu: "کراس"}
	for _, q := range []string{"", "home", "SHIRT", "قميص", "کراس"} {
		if !p.Matches(q) {
			t.Errorf("Matches(%q) = false", q)
		}
	}
	if p.Matches("boots") {
		t.Error("Matches(boots) = true")
	}
}

// TestOrder_NextStatuses проверяет допустимые переходы заказа.
func TestOrder_NextStatuses(t *testing.T) {
	tests := []struct {
		from OrderStatus
		want []OrderStatus
	}{
		{OrderPending, []OrderStatus{OrderApproved, OrderRejected}},
		{OrderApproved, []OrderStatus{OrderDelivered}},
		{OrderRejected, nil},
		{OrderDelivered, nil},
	}
	for _, tt := range tests {
		got := Order{Status: tt.from}.NextStatuses()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s → %v, ожидается %v", tt.from, got, tt.want)
		}
	}
	if (Order{Status: OrderPending}).CanMoveTo(OrderDelivered) {
		t.Error("pending → delivered не должен быть разрешён")
	}
}

// TestOrderDraft_StatusPayload проверяет опускание пустых заметок.
func TestOrderDraft_StatusPayload(t *testing.T) {
	keys := decodeKeys(t, OrderDraft{}.StatusPayload(OrderApproved))
	if len(keys) != 1 || keys["status"] != "approved" {
		t.Errorf("payload = %v, ожидается только status", keys)
	}
	keys = decodeKeys(t, OrderDraft{AdminNote: "ok", EstimatedDelivery: "2 days"}.StatusPayload(OrderApproved))
	if keys["adminNote"] != "ok" || keys["estimatedDelivery"] != "2 days" {
		t.Errorf("payload = %v", keys)
	}
}

// TestVideoAdDraft_Form проверяет значения по умолчанию multipart-формы.
func TestVideoAdDraft_Form(t *testing.T) {
	f := VideoAdDraft{MandatorySeconds: "abc", IsActive: true}.Form()
	if v, _ := f.Value("title"); v != DefaultVideoAdTitle {
		t.Errorf("title = %q", v)
	}
	if v, _ := f.Value("mandatorySeconds"); v != "5" {
		t.Errorf("mandatorySeconds = %q", v)
	}
	if _, ok := f.Value("clickUrl"); ok {
		t.Error("пустой clickUrl не должен отправляться")
	}
	if len(f.Files) != 0 {
		t.Errorf("файлы не выбраны, получено %d", len(f.Files))
	}

	active := ActiveForm(false)
	if len(active.Fields) != 1 || active.Fields[0] != (Field{Name: "isActive", Value: "false"}) {
		t.Errorf("ActiveForm = %+v", active.Fields)
	}
}

// TestSliderDraft_Form проверяет необязательные поля слайда.
func TestSliderDraft_Form(t *testing.T) {
	img := &File{Name: "a.png", ContentType: "image/png", Data: []byte{1}}
	f := SliderDraft{IsActive: true, SortOrder: 2, Image: img}.Form()
	if _, ok := f.Value("title"); ok {
		t.Error("пустой title не должен отправляться")
	}
	if v, _ := f.Value("sortOrder"); v != "2" {
		t.Errorf("sortOrder = %q", v)
	}
	if len(f.Files) != 1 || f.Files[0].Field != "image" {
		t.Errorf("Files = %+v", f.Files)
	}
}

// TestEnums проверяет разбор и подписи закрытых перечислений.
func TestEnums(t *testing.T) {
	if s, err := ParseMatchStatus("live"); err != nil || s != MatchLive {
		t.Errorf("ParseMatchStatus(live) = %q, %v", s, err)
	}
	if _, err := ParseMatchStatus("postponed"); !errors.Is(err, ErrUnknownCode) {
		t.Errorf("ожидалась ErrUnknownCode, получена %v", err)
	}
	if MatchHalftime.Label() != "استراحة" {
		t.Errorf("Label = %q", MatchHalftime.Label())
	}
	if b, err := ParseBadge(""); err != nil || b != BadgeNone {
		t.Errorf("ParseBadge(\"\") = %q, %v", b, err)
	}
	if len(TeamCategoryOptions()) != 5 || len(PlayerPositionOptions()) != 4 {
		t.Error("неверное количество вариантов")
	}
	if EventType("unknown").Label() != "unknown" {
		t.Error("неизвестный код должен выводиться как есть")
	}
	if ColorLabel(TeamColors, DefaultTeamColor) != "أزرق داكن" {
		t.Error("ColorLabel для цвета по умолчанию")
	}
}

// TestTeamDraft_Founded проверяет, что год основания уходит строкой как введён.
func TestTeamDraft_Founded(t *testing.T) {
	tests := []struct {
		name    string
		founded string
		want    string
	}{
		{"год", "1931", "1931"},
		{"пробелы", " 1987 ", "1987"},
		{"не число", "около 1950", "около 1950"},
		{"пусто", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTeamDraft()
			d.Founded = tt.founded
			got, ok := decodeKeys(t, d.Payload())["founded"]
			if !ok {
				t.Fatal("founded должен отправляться всегда")
			}
			if got != tt.want {
				t.Errorf("founded = %#v, ожидается %q", got, tt.want)
			}
		})
	}
}

// TestTeamDraft_RemoveLogo проверяет флажок удаления логотипа.
func TestTeamDraft_RemoveLogo(t *testing.T) {
	d := NewTeamDraft()
	d.LogoURL = "/uploads/old.png"
	d.RemoveLogo = true
	if p := d.Payload(); p.LogoURL != "" {
		t.Errorf("LogoURL = %q, ожидается пустая строка", p.LogoURL)
	}

	d.Logo = &File{Name: "new.png", Data: []byte("png")}
	if p := d.Payload(); p.LogoURL != "/uploads/old.png" {
		t.Errorf("с новым файлом LogoURL = %q", p.LogoURL)
	}
}
