package pages

import (
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

const (
	competitionsPath = "/admin/competitions"
	teamsPath        = "/admin/teams"
	playersPath      = "/admin/teams/players"
	matchesPath      = "/admin/matches"
	operatorsPath    = "/admin/operators"
)

// CompetitionsData — данные страницы соревнований.
type CompetitionsData = List[model.Competition, model.CompetitionDraft]

// TeamsData — данные страницы команд с редактором игроков.
type TeamsData struct {
	List[model.Team, model.TeamDraft]
	// Players — снимок контроллера игроков выбранной команды.
	Players resource.View[model.Player, model.PlayerDraft]
	// Selected — команда, открытая в редакторе игроков (nil — нет).
	Selected *model.Team
	// PlayerConfirmID — игрок, для которого открыто подтверждение удаления.
	PlayerConfirmID string
}

func teamColor(c string) string {
	if c == "" {
		return model.DefaultTeamColor
	}
	return c
}

// MatchesData — данные страницы матчей со справочниками формы.
type MatchesData struct {
	List[model.Match, model.MatchDraft]
	Competitions []model.Competition
	Teams        []model.Team
	Operators    []model.Operator
}

func (d MatchesData) competitionOptions() []model.Option {
	opts := make([]model.Option, len(d.Competitions))
	for i, c := range d.Competitions {
		opts[i] = model.Option{Value: c.ID, Label: c.Name}
	}
	return opts
}

func (d MatchesData) teamOptions() []model.Option {
	opts := make([]model.Option, len(d.Teams))
	for i, tm := range d.Teams {
		opts[i] = model.Option{Value: tm.ID, Label: tm.Name}
	}
	return opts
}

func (d MatchesData) operatorOptions() []model.Option {
	opts := make([]model.Option, len(d.Operators))
	for i, o := range d.Operators {
		opts[i] = model.Option{Value: o.ID, Label: o.Name + " (" + o.Email + ")"}
	}
	return opts
}

func competitionName(m model.Match) string {
	if m.Competition == nil {
		return "-"
	}
	return m.Competition.Name
}

// hourOptions — часы 1..12, подписи с ведущим нулём.
func hourOptions() []model.Option {
	opts := make([]model.Option, 0, 12)
	for hour := 1; hour <= 12; hour++ {
		label := itoa(hour)
		if hour < 10 {
			label = "0" + label
		}
		opts = append(opts, model.Option{Value: itoa(hour), Label: label})
	}
	return opts
}

var meridiems = []schedule.Meridiem{schedule.AM, schedule.PM}

// OperatorsData — данные страницы операторов.
type OperatorsData = List[model.Operator, model.OperatorDraft]

// EventsData — данные журнала событий.
type EventsData = List[model.EventLog, struct{}]

// eventBadge — цвет метки по типу события.
var eventBadge = map[model.EventType]string{
	model.EventGoal:         "badge-green",
	model.EventYellowCard:   "badge-yellow",
	model.EventRedCard:      "badge-red",
	model.EventSubstitution: "badge-blue",
	model.EventAssist:       "badge-purple",
	model.EventPenalty:      "badge-orange",
}

func eventClass(e model.EventType) string {
	if class, ok := eventBadge[e]; ok {
		return class
	}
	return "badge-gray"
}

func refName(r *model.NamedRef) string {
	if r == nil || r.Name == "" {
		return "-"
	}
	return r.Name
}
