// enum.go — закрытые перечисления и таблицы подписей.
// Форма предлагает только известные коды; окончательную проверку делает backend.
package model

import (
	"errors"
	"fmt"
)

// ErrUnknownCode — значение не входит в закрытое перечисление.
var ErrUnknownCode = errors.New("неизвестный код перечисления")

// Option — пункт выпадающего списка или группы кнопок.
type Option struct {
	Value string
	Label string
}

// entry — код перечисления и его подпись.
type entry[E ~string] struct {
	code  E
	label string
}

// table — упорядоченная таблица кодов (порядок = порядок в форме).
type table[E ~string] []entry[E]

// label возвращает подпись кода или сам код, если он неизвестен.
func (t table[E]) label(c E) string {
	for _, e := range t {
		if e.code == c {
			return e.label
		}
	}
	return string(c)
}

// valid сообщает, входит ли код в таблицу.
func (t table[E]) valid(c E) bool {
	for _, e := range t {
		if e.code == c {
			return true
		}
	}
	return false
}

// parse преобразует строку из формы в код перечисления.
func (t table[E]) parse(kind, v string) (E, error) {
	for _, e := range t {
		if string(e.code) == v {
			return e.code, nil
		}
	}
	var zero E
	return zero, fmt.Errorf("%s %q: %w", kind, v, ErrUnknownCode)
}

// options возвращает пункты для формы.
func (t table[E]) options() []Option {
	out := make([]Option, 0, len(t))
	for _, e := range t {
		out = append(out, Option{Value: string(e.code), Label: e.label})
	}
	return out
}

// --- Тип соревнования ---

// CompetitionType — вид спорта соревнования.
type CompetitionType string

const (
	CompetitionFootball   CompetitionType = "football"
	CompetitionFutsal     CompetitionType = "futsal"
	CompetitionHandball   CompetitionType = "handball"
	CompetitionBasketball CompetitionType = "basketball"
	CompetitionNational   CompetitionType = "national"
)

var competitionTypes = table[CompetitionType]{
	{CompetitionFootball, "كرة قدم"},
	{CompetitionFutsal, "صالات"},
	{CompetitionHandball, "كرة يد"},
	{CompetitionBasketball, "كرة سلة"},
	{CompetitionNational, "منتخبات"},
}

func (t CompetitionType) Label() string { return competitionTypes.label(t) }
func (t CompetitionType) Valid() bool   { return competitionTypes.valid(t) }

// ParseCompetitionType разбирает тип соревнования.
func ParseCompetitionType(v string) (CompetitionType, error) {
	return competitionTypes.parse("тип соревнования", v)
}

// CompetitionTypeOptions — варианты для формы.
func CompetitionTypeOptions() []Option { return competitionTypes.options() }

// --- Категория команды ---

// TeamCategory — категория команды.
type TeamCategory string

const (
	TeamFootball   TeamCategory = "FOOTBALL"
	TeamFutsal     TeamCategory = "FUTSAL"
	TeamHandball   TeamCategory = "HANDBALL"
	TeamBasketball TeamCategory = "BASKETBALL"
	TeamNational   TeamCategory = "NATIONAL"
)

var teamCategories = table[TeamCategory]{
	{TeamFootball, "كرة قدم"},
	{TeamFutsal, "صالات"},
	{TeamHandball, "كرة يد"},
	{TeamBasketball, "كرة سلة"},
	{TeamNational, "منتخبات"},
}

func (c TeamCategory) Label() string { return teamCategories.label(c) }
func (c TeamCategory) Valid() bool   { return teamCategories.valid(c) }

// ParseTeamCategory разбирает категорию команды.
func ParseTeamCategory(v string) (TeamCategory, error) {
	return teamCategories.parse("категория команды", v)
}

// TeamCategoryOptions — варианты для формы.
func TeamCategoryOptions() []Option { return teamCategories.options() }

// --- Позиция игрока ---

// PlayerPosition — амплуа игрока.
type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "Goalkeeper"
	PositionDefender   PlayerPosition = "Defender"
	PositionMidfielder PlayerPosition = "Midfielder"
	PositionForward    PlayerPosition = "Forward"
)

var playerPositions = table[PlayerPosition]{
	{PositionGoalkeeper, "حارس مرمى"},
	{PositionDefender, "مدافع"},
	{PositionMidfielder, "وسط"},
	{PositionForward, "مهاجم"},
}

func (p PlayerPosition) Label() string { return playerPositions.label(p) }
func (p PlayerPosition) Valid() bool   { return playerPositions.valid(p) }

// ParsePlayerPosition разбирает амплуа игрока.
func ParsePlayerPosition(v string) (PlayerPosition, error) {
	return playerPositions.parse("позиция игрока", v)
}

// PlayerPositionOptions — варианты для формы.
func PlayerPositionOptions() []Option { return playerPositions.options() }

// --- Статус матча ---

// MatchStatus — статус матча.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchHalftime  MatchStatus = "halftime"
	MatchFinished  MatchStatus = "finished"
)

var matchStatuses = table[MatchStatus]{
	{MatchScheduled, "مجدولة"},
	{MatchLive, "مباشر"},
	{MatchHalftime, "استراحة"},
	{MatchFinished, "انتهت"},
}

func (s MatchStatus) Label() string { return matchStatuses.label(s) }
func (s MatchStatus) Valid() bool   { return matchStatuses.valid(s) }

// ParseMatchStatus разбирает статус матча.
func ParseMatchStatus(v string) (MatchStatus, error) {
	return matchStatuses.parse("статус матча", v)
}

// MatchStatusOptions — варианты для селектора статуса.
func MatchStatusOptions() []Option { return matchStatuses.options() }

// --- Статус заказа ---

// OrderStatus — статус заказа магазина.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderRejected  OrderStatus = "rejected"
	OrderDelivered OrderStatus = "delivered"
)

var orderStatuses = table[OrderStatus]{
	{OrderPending, "قيد الانتظار"},
	{OrderApproved, "موافق عليها"},
	{OrderRejected, "مرفوضة"},
	{OrderDelivered, "تم التوصيل"},
}

func (s OrderStatus) Label() string { return orderStatuses.label(s) }
func (s OrderStatus) Valid() bool   { return orderStatuses.valid(s) }

// ParseOrderStatus разбирает статус заказа.
func ParseOrderStatus(v string) (OrderStatus, error) {
	return orderStatuses.parse("статус заказа", v)
}

// OrderStatusOptions — варианты фильтра (без "все").
func OrderStatusOptions() []Option { return orderStatuses.options() }

// --- Бейдж товара ---

// Badge — бейдж на карточке товара. Пустая строка — без бейджа.
type Badge string

const (
	BadgeNone       Badge = ""
	BadgeNew        Badge = "new"
	BadgeSale       Badge = "sale"
	BadgeHot        Badge = "hot"
	BadgeLimited    Badge = "limited"
	BadgeBestseller Badge = "bestseller"
)

var badges = table[Badge]{
	{BadgeNone, "بدون"},
	{BadgeNew, "جديد"},
	{BadgeSale, "تخفيض"},
	{BadgeHot, "رائج"},
	{BadgeLimited, "محدود"},
	{BadgeBestseller, "الأكثر مبيعاً"},
}

func (b Badge) Label() string { return badges.label(b) }
func (b Badge) Valid() bool   { return badges.valid(b) }

// ParseBadge разбирает бейдж товара.
func ParseBadge(v string) (Badge, error) {
	return badges.parse("бейдж", v)
}

// BadgeOptions — варианты для формы.
func BadgeOptions() []Option { return badges.options() }

// --- Тип события матча ---

// EventType — тип события в журнале.
type EventType string

const (
	EventGoal         EventType = "goal"
	EventYellowCard   EventType = "yellow_card"
	EventRedCard      EventType = "red_card"
	EventSubstitution EventType = "substitution"
	EventAssist       EventType = "assist"
	EventPenalty      EventType = "penalty"
)

var eventTypes = table[EventType]{
	{EventGoal, "هدف"},
	{EventYellowCard, "بطاقة صفراء"},
	{EventRedCard, "بطاقة حمراء"},
	{EventSubstitution, "تبديل"},
	{EventAssist, "صناعة هدف"},
	{EventPenalty, "ركلة جزاء"},
}

func (e EventType) Label() string { return eventTypes.label(e) }
func (e EventType) Valid() bool   { return eventTypes.valid(e) }

// --- Палитры ---

// TeamColors — палитра основного цвета команды.
var TeamColors = []Option{
	{"#DC2626", "أحمر"},
	{"#1E3A8A", "أزرق داكن"},
	{"#2563EB", "أزرق"},
	{"#16A34A", "أخضر"},
	{"#FACC15", "أصفر"},
	{"#F97316", "برتقالي"},
	{"#7C3AED", "بنفسجي"},
	{"#000000", "أسود"},
	{"#FFFFFF", "أبيض"},
	{"#92400E", "بني"},
	{"#EC4899", "وردي"},
	{"#0891B2", "سماوي"},
}

// ProductColors — палитра цветов товара.
var ProductColors = []Option{
	{"#000000", "أسود"},
	{"#FFFFFF", "أبيض"},
	{"#1E3A8A", "أزرق داكن"},
	{"#DC2626", "أحمر"},
	{"#16A34A", "أخضر"},
	{"#CA8A04", "ذهبي"},
	{"#7C3AED", "بنفسجي"},
	{"#EA580C", "برتقالي"},
	{"#EC4899", "وردي"},
	{"#6B7280", "رمادي"},
	{"#92400E", "بني"},
	{"#0891B2", "سماوي"},
}

// ProductSizes — доступные размеры.
var ProductSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "3XL"}

// ProductEmojis — эмодзи-заглушки для карточки без изображения.
var ProductEmojis = []string{"📦", "👕", "👟", "🩳", "⚽", "🧢", "🎽", "🧣", "🎒", "🏆", "⭐", "🔥"}

// ColorLabel возвращает подпись цвета из палитры или сам код.
func ColorLabel(palette []Option, hex string) string {
	for _, o := range palette {
		if o.Value == hex {
			return o.Label
		}
	}
	return hex
}
