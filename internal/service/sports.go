package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

// --- Соревнования ---

// Competitions — страница соревнований.
type Competitions = resource.Controller[model.Competition, model.CompetitionDraft]

// NewCompetitions создаёт контроллер соревнований.
func NewCompetitions(d Deps) *Competitions {
	api := d.API.Admin()
	return resource.New(resource.Schema[model.Competition, model.CompetitionDraft]{
		Name:  "competitions",
		ID:    func(c model.Competition) string { return c.ID },
		New:   func(string) model.CompetitionDraft { return model.NewCompetitionDraft() },
		Draft: model.Competition.Draft,
		Uploads: []resource.Upload[model.CompetitionDraft]{{
			Name:  "logo",
			File:  func(c *model.CompetitionDraft) *model.File { return c.Logo },
			Apply: func(c *model.CompetitionDraft, stored string) { c.LogoURL, c.Logo = stored, nil },
		}},
		Messages: resource.Messages{
			Created:    "competitions.created",
			Updated:    "competitions.updated",
			SaveFailed: "toast.failed",
		},
	}, resource.Funcs[model.Competition, model.CompetitionDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Competition, error) {
			return api.Competitions(ctx)
		},
		CreateFn: func(ctx context.Context, c model.CompetitionDraft) error {
			return api.CreateCompetition(ctx, c.Payload())
		},
		UpdateFn: func(ctx context.Context, id string, c model.CompetitionDraft) error {
			return api.UpdateCompetition(ctx, id, c.Payload())
		},
		DeleteFn: api.DeleteCompetition,
	}, d.options()...)
}

// --- Команды и игроки ---

// Teams — страница команд с вложенным редактором игроков выбранной команды.
type Teams struct {
	*resource.Controller[model.Team, model.TeamDraft]
	// Players — игроки команды, id которой хранится в фильтре контроллера.
	Players *resource.Controller[model.Player, model.PlayerDraft]
}

// NewTeams создаёт контроллер команд и игроков.
func NewTeams(d Deps) *Teams {
	api := d.API.Teams()
	t := &Teams{}

	t.Controller = resource.New(resource.Schema[model.Team, model.TeamDraft]{
		Name:  "teams",
		ID:    func(tm model.Team) string { return tm.ID },
		New:   func(string) model.TeamDraft { return model.NewTeamDraft() },
		Draft: model.Team.Draft,
		Uploads: []resource.Upload[model.TeamDraft]{{
			Name:  "logo",
			File:  func(tm *model.TeamDraft) *model.File { return tm.Logo },
			Apply: func(tm *model.TeamDraft, stored string) { tm.LogoURL, tm.Logo, tm.RemoveLogo = stored, nil, false },
		}},
		Messages: resource.Messages{
			Created:    "teams.created",
			Updated:    "teams.updated",
			SaveFailed: "toast.failed",
		},
	}, resource.Funcs[model.Team, model.TeamDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Team, error) {
			return api.List(ctx, true)
		},
		CreateFn: func(ctx context.Context, tm model.TeamDraft) error {
			return api.Create(ctx, tm.Payload())
		},
		UpdateFn: func(ctx context.Context, id string, tm model.TeamDraft) error {
			return api.Update(ctx, id, tm.Payload())
		},
		DeleteFn: api.Delete,
	}, d.options()...)

	t.Players = resource.New(resource.Schema[model.Player, model.PlayerDraft]{
		Name:  "players",
		ID:    func(p model.Player) string { return p.ID },
		New:   model.NewPlayerDraft,
		Draft: model.Player.Draft,
		Messages: resource.Messages{
			Created:      "players.created",
			Updated:      "players.updated",
			SaveFailed:   "toast.failed",
			DeleteFailed: "toast.failed",
		},
	}, resource.Funcs[model.Player, model.PlayerDraft]{
		// Игроки приходят вместе с командами (includePlayers=true).
		ListFn: func(_ context.Context, teamID string) ([]model.Player, error) {
			return t.playersOf(teamID), nil
		},
		CreateFn: func(ctx context.Context, p model.PlayerDraft) error {
			return api.AddPlayer(ctx, p.TeamID, p.Payload())
		},
		UpdateFn: func(ctx context.Context, id string, p model.PlayerDraft) error {
			return api.UpdatePlayer(ctx, p.TeamID, id, p.Payload())
		},
		DeleteFn: func(ctx context.Context, id string) error {
			return api.DeletePlayer(ctx, t.Players.Filter(), id)
		},
	}, d.options(resource.WithReload(t.reloadWithPlayers))...)

	return t
}

// playersOf возвращает игроков команды teamID из последнего списка команд.
func (t *Teams) playersOf(teamID string) []model.Player {
	for _, tm := range t.Items() {
		if tm.ID != teamID {
			continue
		}
		players := make([]model.Player, len(tm.Players))
		for i, p := range tm.Players {
			if p.TeamID == "" {
				p.TeamID = teamID
			}
			players[i] = p
		}
		return players
	}
	return []model.Player{}
}

// reloadWithPlayers перезагружает команды, затем состав выбранной команды.
func (t *Teams) reloadWithPlayers(ctx context.Context) {
	if t.Load(ctx) {
		t.Players.Load(ctx)
	}
}

// SelectTeam открывает редактор игроков команды teamID.
func (t *Teams) SelectTeam(ctx context.Context, teamID string) {
	t.Players.SetFilter(teamID)
	t.Players.Load(ctx)
}

// SelectedTeam возвращает команду, открытую в редакторе игроков.
func (t *Teams) SelectedTeam() (model.Team, bool) {
	id := t.Players.Filter()
	if id == "" {
		return model.Team{}, false
	}
	for _, tm := range t.Items() {
		if tm.ID == id {
			return tm, true
		}
	}
	return model.Team{}, false
}

// --- Матчи ---

// Matches — страница матчей со справочниками формы.
type Matches struct {
	*resource.Controller[model.Match, model.MatchDraft]
	Competitions *resource.LookupOf[model.Competition]
	Teams        *resource.LookupOf[model.Team]
	Operators    *resource.LookupOf[model.Operator]

	setStatus func(ctx context.Context, id string, status model.MatchStatus) error
}

// NewMatches создаёт контроллер матчей. Время начала собирается и
// раскладывается в часовом поясе d.Location.
func NewMatches(d Deps) *Matches {
	api := d.API.Matches()
	loc := d.location()

	m := &Matches{
		Competitions: resource.NewLookup("competitions", d.API.Admin().Competitions),
		Teams: resource.NewLookup("teams", func(ctx context.Context) ([]model.Team, error) {
			return d.API.Teams().List(ctx, false)
		}),
		Operators: resource.NewLookup("operators", d.API.Admin().Operators),
		setStatus: api.UpdateStatus,
	}

	m.Controller = resource.New(resource.Schema[model.Match, model.MatchDraft]{
		Name:  "matches",
		ID:    func(mt model.Match) string { return mt.ID },
		New:   func(string) model.MatchDraft { return model.NewMatchDraft() },
		Draft: func(mt model.Match) model.MatchDraft { return mt.Draft(loc) },
		Validate: func(md model.MatchDraft, _ bool) string {
			return validateMatch(md, loc)
		},
		Messages: resource.Messages{
			Created:    "matches.created",
			Updated:    "matches.updated",
			LoadFailed: "matches.load_failed",
		},
	}, resource.Funcs[model.Match, model.MatchDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Match, error) {
			return api.List(ctx)
		},
		CreateFn: func(ctx context.Context, md model.MatchDraft) error {
			p, err := md.Payload(loc, true)
			if err != nil {
				return err
			}
			return api.Create(ctx, p)
		},
		UpdateFn: func(ctx context.Context, id string, md model.MatchDraft) error {
			p, err := md.Payload(loc, false)
			if err != nil {
				return err
			}
			return api.Update(ctx, id, p)
		},
		DeleteFn: api.Delete,
	}, d.options(resource.WithLookups(m.Competitions, m.Teams, m.Operators))...)

	return m
}

// validateMatch требует соревнование, обе команды и дату, затем проверяет время.
func validateMatch(md model.MatchDraft, loc *time.Location) string {
	if md.CompetitionID == "" || md.HomeTeamID == "" || md.AwayTeamID == "" || md.Slot.Date == "" {
		return KeyMatchRequired
	}
	if _, err := schedule.Compose(md.Slot, loc); err != nil {
		if errors.Is(err, schedule.ErrNoDate) || errors.Is(err, schedule.ErrInvalidDate) {
			return KeyMatchNoDate
		}
		return KeyMatchInvalidTime
	}
	return ""
}

// SetStatus переводит матч id в статус status отдельным запросом.
func (m *Matches) SetStatus(ctx context.Context, id string, status model.MatchStatus) bool {
	if !status.Valid() {
		m.Notify(resource.Notice{Kind: resource.NoticeError, Key: KeyMatchInvalidStatus})
		return false
	}
	return m.Transition(ctx, id, "", func(ctx context.Context, _ model.MatchDraft) error {
		return m.setStatus(ctx, id, status)
	})
}

// SearchMatches — клиентский поиск по названиям команд.
func SearchMatches(items []model.Match, q string) []model.Match {
	q = strings.ToLower(strings.TrimSpace(q))
	return resource.Search(items, q, func(mt model.Match, q string) bool {
		return strings.Contains(strings.ToLower(mt.HomeTeam.NameOr("")), q) ||
			strings.Contains(strings.ToLower(mt.AwayTeam.NameOr("")), q)
	})
}

// --- Операторы ---

// Operators — страница операторов (только создание).
type Operators = resource.Controller[model.Operator, model.OperatorDraft]

// NewOperators создаёт контроллер операторов.
func NewOperators(d Deps) *Operators {
	api := d.API.Admin()
	return resource.New(resource.Schema[model.Operator, model.OperatorDraft]{
		Name:  "operators",
		ID:    func(o model.Operator) string { return o.ID },
		New:   func(string) model.OperatorDraft { return model.OperatorDraft{} },
		Draft: func(o model.Operator) model.OperatorDraft { return model.OperatorDraft{Name: o.Name, Email: o.Email} },
		Validate: func(od model.OperatorDraft, _ bool) string {
			if strings.TrimSpace(od.Name) == "" || strings.TrimSpace(od.Email) == "" || od.Password == "" {
				return KeyOperatorRequired
			}
			return ""
		},
		Messages: resource.Messages{
			Created:    "operators.created",
			SaveFailed: "toast.failed",
		},
	}, resource.Funcs[model.Operator, model.OperatorDraft]{
		ListFn: func(ctx context.Context, _ string) ([]model.Operator, error) {
			return api.Operators(ctx)
		},
		CreateFn: api.CreateOperator,
	}, d.options()...)
}

// --- Журнал событий ---

// Events — журнал событий матчей (только чтение).
type Events = resource.Controller[model.EventLog, struct{}]

// NewEvents создаёт контроллер журнала событий.
func NewEvents(d Deps) *Events {
	api := d.API.Admin()
	limit := d.eventLimit()
	return resource.New(resource.Schema[model.EventLog, struct{}]{
		Name:     "events",
		ID:       func(e model.EventLog) string { return e.ID },
		New:      func(string) struct{} { return struct{}{} },
		Draft:    func(model.EventLog) struct{} { return struct{}{} },
		Messages: resource.Messages{LoadFailed: "events.load_failed"},
	}, resource.Funcs[model.EventLog, struct{}]{
		ListFn: func(ctx context.Context, _ string) ([]model.EventLog, error) {
			return api.EventLogs(ctx, limit)
		},
	}, d.options()...)
}
