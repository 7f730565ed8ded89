// sports.go — обработчики соревнований, команд, матчей, операторов и журнала событий.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
	"github.com/ahmad115kobane-wq/adminapp/internal/service"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
)

// --- Соревнования ---

// CompetitionsHandler — страница соревнований.
type CompetitionsHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Competition, model.CompetitionDraft, *service.Competitions]
}

// NewCompetitionsHandler создаёт обработчик страницы соревнований.
func NewCompetitionsHandler(deps *PageDeps, logger *slog.Logger) *CompetitionsHandler {
	h := &CompetitionsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.competitions")),
	}
	h.crud = &crud[model.Competition, model.CompetitionDraft, *service.Competitions]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/competitions",
		ops:    opAll,
		get:    h.controller,
		decode: decodeCompetition,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *CompetitionsHandler) Path() string { return "/admin/competitions" }

// Routes регистрирует маршруты страницы.
func (h *CompetitionsHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *CompetitionsHandler) controller(_ *http.Request, s *auth.SessionData) *service.Competitions {
	return state.Get(h.Store, s.ID, "competitions", func() *service.Competitions {
		return service.NewCompetitions(h.service(s, h.logger))
	})
}

var searchCompetitions = searchBy(func(c model.Competition) []string {
	return []string{c.Name, c.ShortName, c.Country}
})

func (h *CompetitionsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := listData(h.PageDeps, s, "competitions", ctl.View(), r, searchCompetitions, confirmID)
	renderPage(w, r, h.logger, pages.Competitions(data))
}

func decodeCompetition(r *http.Request, d model.CompetitionDraft) model.CompetitionDraft {
	d.Name = formString(r, "name")
	d.ShortName = formString(r, "shortName")
	d.Country = formString(r, "country")
	d.Season = formString(r, "season")
	if t, err := model.ParseCompetitionType(formString(r, "type")); err == nil {
		d.Type = t
	}
	d.Logo = formFile(r, "logo", d.Logo)
	return d
}

// --- Команды и игроки ---

// TeamsHandler — страница команд с редактором игроков.
type TeamsHandler struct {
	*PageDeps
	logger  *slog.Logger
	teams   *crud[model.Team, model.TeamDraft, *service.Teams]
	players *crud[model.Player, model.PlayerDraft, *resource.Controller[model.Player, model.PlayerDraft]]
}

// NewTeamsHandler создаёт обработчик страницы команд.
func NewTeamsHandler(deps *PageDeps, logger *slog.Logger) *TeamsHandler {
	h := &TeamsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.teams")),
	}
	h.teams = &crud[model.Team, model.TeamDraft, *service.Teams]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/teams",
		ops:    opAll,
		get:    h.controller,
		decode: decodeTeam,
		show: func(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
			h.show(w, r, s, confirmID, "")
		},
	}
	h.players = &crud[model.Player, model.PlayerDraft, *resource.Controller[model.Player, model.PlayerDraft]]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/teams",
		ops:    opAll,
		get: func(r *http.Request, s *auth.SessionData) *resource.Controller[model.Player, model.PlayerDraft] {
			return h.controller(r, s).Players
		},
		decode: decodePlayer,
		show: func(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
			h.show(w, r, s, "", confirmID)
		},
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *TeamsHandler) Path() string { return "/admin/teams" }

// Routes регистрирует маршруты команд и вложенные маршруты игроков.
func (h *TeamsHandler) Routes(r chi.Router) {
	h.teams.Routes(r)
	r.Get("/{id}/players", h.handleSelect)
	r.Route("/players", h.players.Routes)
}

func (h *TeamsHandler) controller(_ *http.Request, s *auth.SessionData) *service.Teams {
	return state.Get(h.Store, s.ID, "teams", func() *service.Teams {
		return service.NewTeams(h.service(s, h.logger))
	})
}

// handleSelect открывает редактор игроков команды.
func (h *TeamsHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := h.controller(r, session)
	ctl.LoadIfStale(r.Context(), freshness)
	ctl.SelectTeam(r.Context(), chi.URLParam(r, "id"))
	http.Redirect(w, r, "/admin/teams", http.StatusFound)
}

var searchTeams = searchBy(func(t model.Team) []string {
	return []string{t.Name, t.ShortName, t.City, t.Country}
})

func (h *TeamsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID, playerConfirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	if ctl.Players.Filter() != "" {
		ctl.Players.LoadIfStale(r.Context(), freshness)
	}

	data := pages.TeamsData{
		List:            listData(h.PageDeps, s, "teams", ctl.View(), r, searchTeams, confirmID),
		Players:         ctl.Players.View(),
		PlayerConfirmID: playerConfirmID,
	}
	data.Notices = append(data.Notices, data.Players.Notices...)
	if team, ok := ctl.SelectedTeam(); ok {
		data.Selected = &team
	}
	renderPage(w, r, h.logger, pages.Teams(data))
}

func decodeTeam(r *http.Request, d model.TeamDraft) model.TeamDraft {
	d.Name = formString(r, "name")
	d.ShortName = formString(r, "shortName")
	if c, err := model.ParseTeamCategory(formString(r, "category")); err == nil {
		d.Category = c
	}
	d.PrimaryColor = formString(r, "primaryColor")
	d.Country = formString(r, "country")
	d.City = formString(r, "city")
	d.Stadium = formString(r, "stadium")
	d.Coach = formString(r, "coach")
	d.Founded = formString(r, "founded")
	d.Logo = formFile(r, "logo", d.Logo)
	d.RemoveLogo = formBool(r, "logoRemove")
	return d
}

func decodePlayer(r *http.Request, d model.PlayerDraft) model.PlayerDraft {
	d.Name = formString(r, "name")
	d.ShirtNumber = formInt(r, "shirtNumber", d.ShirtNumber)
	if p, err := model.ParsePlayerPosition(formString(r, "position")); err == nil {
		d.Position = p
	}
	d.Nationality = formString(r, "nationality")
	d.ImageURL = formString(r, "imageUrl")
	return d
}

// --- Матчи ---

// MatchesHandler — страница матчей.
type MatchesHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Match, model.MatchDraft, *service.Matches]
}

// NewMatchesHandler создаёт обработчик страницы матчей.
func NewMatchesHandler(deps *PageDeps, logger *slog.Logger) *MatchesHandler {
	h := &MatchesHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.matches")),
	}
	h.crud = &crud[model.Match, model.MatchDraft, *service.Matches]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/matches",
		ops:    opAll,
		get:    h.controller,
		decode: decodeMatch,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *MatchesHandler) Path() string { return "/admin/matches" }

// Routes регистрирует маршруты страницы и смену статуса.
func (h *MatchesHandler) Routes(r chi.Router) {
	h.crud.Routes(r)
	r.Post("/{id}/status", h.handleStatus)
}

func (h *MatchesHandler) controller(_ *http.Request, s *auth.SessionData) *service.Matches {
	return state.Get(h.Store, s.ID, "matches", func() *service.Matches {
		return service.NewMatches(h.service(s, h.logger))
	})
}

func (h *MatchesHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, confirmID string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := pages.MatchesData{
		List:         listData(h.PageDeps, s, "matches", ctl.View(), r, service.SearchMatches, confirmID),
		Competitions: ctl.Competitions.Items(),
		Teams:        ctl.Teams.Items(),
		Operators:    ctl.Operators.Items(),
	}
	renderPage(w, r, h.logger, pages.Matches(data))
}

// handleStatus переводит матч в выбранный статус.
func (h *MatchesHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == nil {
		return
	}
	ctl := h.controller(r, session)
	ctl.LoadIfStale(r.Context(), freshness)
	// Неизвестный статус отклоняет SetStatus.
	ctl.SetStatus(r.Context(), chi.URLParam(r, "id"), model.MatchStatus(formString(r, "status")))
	seeOther(w, r, "/admin/matches")
}

func decodeMatch(r *http.Request, d model.MatchDraft) model.MatchDraft {
	d.CompetitionID = formString(r, "competitionId")
	d.HomeTeamID = formString(r, "homeTeamId")
	d.AwayTeamID = formString(r, "awayTeamId")
	d.Slot = schedule.Slot{
		Date:   formString(r, "date"),
		Hour:   formInt(r, "hour", 0),
		Minute: formString(r, "minute"),
	}
	if m, err := schedule.ParseMeridiem(formString(r, "meridiem")); err == nil {
		d.Slot.Meridiem = m
	}
	d.Venue = formString(r, "venue")
	d.Referee = formString(r, "referee")
	d.Matchday = formString(r, "matchday")
	d.Season = formString(r, "season")
	d.OperatorID = formString(r, "operatorId")
	d.IsFeatured = formBool(r, "isFeatured")
	return d
}

// --- Операторы ---

// OperatorsHandler — страница операторов (только список и создание).
type OperatorsHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.Operator, model.OperatorDraft, *service.Operators]
}

// NewOperatorsHandler создаёт обработчик страницы операторов.
func NewOperatorsHandler(deps *PageDeps, logger *slog.Logger) *OperatorsHandler {
	h := &OperatorsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.operators")),
	}
	h.crud = &crud[model.Operator, model.OperatorDraft, *service.Operators]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/operators",
		ops:    opCreate,
		get:    h.controller,
		decode: decodeOperator,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *OperatorsHandler) Path() string { return "/admin/operators" }

// Routes регистрирует маршруты страницы.
func (h *OperatorsHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *OperatorsHandler) controller(_ *http.Request, s *auth.SessionData) *service.Operators {
	return state.Get(h.Store, s.ID, "operators", func() *service.Operators {
		return service.NewOperators(h.service(s, h.logger))
	})
}

func (h *OperatorsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, _ string) {
	ctl := h.controller(r, s)
	ctl.LoadIfStale(r.Context(), freshness)
	data := listData(h.PageDeps, s, "operators", ctl.View(), r, nil, "")
	renderPage(w, r, h.logger, pages.Operators(data))
}

// decodeOperator не сохраняет пароль в черновике между попытками:
// поле пароля всегда приходит из формы.
func decodeOperator(r *http.Request, d model.OperatorDraft) model.OperatorDraft {
	d.Name = formString(r, "name")
	d.Email = formString(r, "email")
	d.Password = r.FormValue("password")
	return d
}

// --- Журнал событий ---

// EventsHandler — журнал событий матчей (только чтение).
type EventsHandler struct {
	*PageDeps
	logger *slog.Logger
	crud   *crud[model.EventLog, struct{}, *service.Events]
}

// NewEventsHandler создаёт обработчик журнала событий.
func NewEventsHandler(deps *PageDeps, logger *slog.Logger) *EventsHandler {
	h := &EventsHandler{
		PageDeps: deps,
		logger:   logger.With(slog.String("component", "ui.events")),
	}
	h.crud = &crud[model.EventLog, struct{}, *service.Events]{
		deps:   deps,
		logger: h.logger,
		back:   "/admin/events",
		get:    h.controller,
		show:   h.show,
	}
	return h
}

// Path — префикс маршрутов страницы.
func (h *EventsHandler) Path() string { return "/admin/events" }

// Routes регистрирует маршруты страницы.
func (h *EventsHandler) Routes(r chi.Router) { h.crud.Routes(r) }

func (h *EventsHandler) controller(_ *http.Request, s *auth.SessionData) *service.Events {
	return state.Get(h.Store, s.ID, "events", func() *service.Events {
		return service.NewEvents(h.service(s, h.logger))
	})
}

// show всегда перезапрашивает журнал: события добавляются операторами матчей.
func (h *EventsHandler) show(w http.ResponseWriter, r *http.Request, s *auth.SessionData, _ string) {
	ctl := h.controller(r, s)
	ctl.Load(r.Context())
	data := listData(h.PageDeps, s, "events", ctl.View(), r, nil, "")
	renderPage(w, r, h.logger, pages.Events(data))
}
