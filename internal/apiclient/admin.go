package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// AdminAPI — административные ресурсы: соревнования, операторы, журнал событий.
type AdminAPI struct{ c *Client }

// Admin возвращает аксессор административных ресурсов.
func (c *Client) Admin() *AdminAPI { return &AdminAPI{c: c} }

// Competitions возвращает все соревнования.
func (a *AdminAPI) Competitions(ctx context.Context) ([]model.Competition, error) {
	return list[model.Competition](ctx, a.c, "competitions.list", "/admin/competitions", nil)
}

// CreateCompetition создаёт соревнование.
func (a *AdminAPI) CreateCompetition(ctx context.Context, p model.CompetitionPayload) error {
	return a.c.do(ctx, request{op: "competitions.create", method: http.MethodPost, path: "/admin/competitions", body: p}, nil)
}

// UpdateCompetition обновляет соревнование id.
func (a *AdminAPI) UpdateCompetition(ctx context.Context, id string, p model.CompetitionPayload) error {
	return a.c.do(ctx, request{op: "competitions.update", method: http.MethodPut, path: "/admin/competitions/" + escape(id), body: p}, nil)
}

// DeleteCompetition удаляет соревнование id.
func (a *AdminAPI) DeleteCompetition(ctx context.Context, id string) error {
	return a.c.do(ctx, request{op: "competitions.delete", method: http.MethodDelete, path: "/admin/competitions/" + escape(id)}, nil)
}

// Operators возвращает операторов с назначенными матчами.
func (a *AdminAPI) Operators(ctx context.Context) ([]model.Operator, error) {
	return list[model.Operator](ctx, a.c, "operators.list", "/admin/operators", nil)
}

// CreateOperator создаёт оператора.
func (a *AdminAPI) CreateOperator(ctx context.Context, d model.OperatorDraft) error {
	return a.c.do(ctx, request{op: "operators.create", method: http.MethodPost, path: "/admin/operators", body: d}, nil)
}

// EventLogs возвращает последние limit записей журнала событий.
func (a *AdminAPI) EventLogs(ctx context.Context, limit int) ([]model.EventLog, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	return list[model.EventLog](ctx, a.c, "events.list", "/admin/event-logs", q)
}
