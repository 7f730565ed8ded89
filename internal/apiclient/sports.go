package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// MatchAPI — матчи.
type MatchAPI struct{ c *Client }

// Matches возвращает аксессор матчей.
func (c *Client) Matches() *MatchAPI { return &MatchAPI{c: c} }

// List возвращает матчи с присоединёнными командами и соревнованием.
func (m *MatchAPI) List(ctx context.Context) ([]model.Match, error) {
	return list[model.Match](ctx, m.c, "matches.list", "/matches", nil)
}

// Create создаёт матч.
func (m *MatchAPI) Create(ctx context.Context, p model.MatchPayload) error {
	return m.c.do(ctx, request{op: "matches.create", method: http.MethodPost, path: "/matches", body: p}, nil)
}

// Update обновляет матч id.
func (m *MatchAPI) Update(ctx context.Context, id string, p model.MatchPayload) error {
	return m.c.do(ctx, request{op: "matches.update", method: http.MethodPut, path: "/matches/" + escape(id), body: p}, nil)
}

// UpdateStatus переводит матч в статус status.
func (m *MatchAPI) UpdateStatus(ctx context.Context, id string, status model.MatchStatus) error {
	return m.c.do(ctx, request{
		op:     "matches.status",
		method: http.MethodPatch,
		path:   "/matches/" + escape(id) + "/status",
		body:   model.MatchStatusPayload{Status: status},
	}, nil)
}

// Delete удаляет матч id.
func (m *MatchAPI) Delete(ctx context.Context, id string) error {
	return m.c.do(ctx, request{op: "matches.delete", method: http.MethodDelete, path: "/matches/" + escape(id)}, nil)
}

// TeamAPI — команды и их игроки.
type TeamAPI struct{ c *Client }

// Teams возвращает аксессор команд.
func (c *Client) Teams() *TeamAPI { return &TeamAPI{c: c} }

// List возвращает команды; includePlayers — вместе с составами.
func (t *TeamAPI) List(ctx context.Context, includePlayers bool) ([]model.Team, error) {
	var q url.Values
	if includePlayers {
		q = url.Values{"includePlayers": {"true"}}
	}
	return list[model.Team](ctx, t.c, "teams.list", "/teams", q)
}

// Create создаёт команду.
func (t *TeamAPI) Create(ctx context.Context, p model.TeamPayload) error {
	return t.c.do(ctx, request{op: "teams.create", method: http.MethodPost, path: "/teams", body: p}, nil)
}

// Update обновляет команду id.
func (t *TeamAPI) Update(ctx context.Context, id string, p model.TeamPayload) error {
	return t.c.do(ctx, request{op: "teams.update", method: http.MethodPut, path: "/teams/" + escape(id), body: p}, nil)
}

// Delete удаляет команду id.
func (t *TeamAPI) Delete(ctx context.Context, id string) error {
	return t.c.do(ctx, request{op: "teams.delete", method: http.MethodDelete, path: "/teams/" + escape(id)}, nil)
}

// AddPlayer добавляет игрока в команду teamID.
func (t *TeamAPI) AddPlayer(ctx context.Context, teamID string, p model.PlayerPayload) error {
	return t.c.do(ctx, request{
		op:     "players.create",
		method: http.MethodPost,
		path:   "/teams/" + escape(teamID) + "/players",
		body:   p,
	}, nil)
}

// UpdatePlayer обновляет игрока playerID команды teamID.
func (t *TeamAPI) UpdatePlayer(ctx context.Context, teamID, playerID string, p model.PlayerPayload) error {
	return t.c.do(ctx, request{
		op:     "players.update",
		method: http.MethodPut,
		path:   "/teams/" + escape(teamID) + "/players/" + escape(playerID),
		body:   p,
	}, nil)
}

// DeletePlayer удаляет игрока playerID команды teamID.
func (t *TeamAPI) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	return t.c.do(ctx, request{
		op:     "players.delete",
		method: http.MethodDelete,
		path:   "/teams/" + escape(teamID) + "/players/" + escape(playerID),
	}, nil)
}
