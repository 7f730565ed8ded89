package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// Stats — счётчики главной страницы.
type Stats struct {
	Competitions  int
	Teams         int
	Matches       int
	LiveMatches   int
	Operators     int
	Products      int
	PendingOrders int
	Sliders       int
	VideoAds      int
}

// LoadStats параллельно запрашивает списки и считает записи.
// Ошибка любого запроса возвращается целиком, частичных счётчиков нет.
func LoadStats(ctx context.Context, api *apiclient.Client) (Stats, error) {
	var s Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := api.Admin().Competitions(ctx)
		s.Competitions = len(items)
		return err
	})
	g.Go(func() error {
		items, err := api.Teams().List(ctx, false)
		s.Teams = len(items)
		return err
	})
	g.Go(func() error {
		items, err := api.Matches().List(ctx)
		s.Matches = len(items)
		for _, m := range items {
			if m.Status == model.MatchLive || m.Status == model.MatchHalftime {
				s.LiveMatches++
			}
		}
		return err
	})
	g.Go(func() error {
		items, err := api.Admin().Operators(ctx)
		s.Operators = len(items)
		return err
	})
	g.Go(func() error {
		items, err := api.Store().Products(ctx)
		s.Products = len(items)
		return err
	})
	g.Go(func() error {
		items, err := api.Orders().List(ctx, model.OrderPending)
		s.PendingOrders = len(items)
		return err
	})
	g.Go(func() error {
		items, err := api.Sliders().List(ctx)
		s.Sliders = len(items)
		return err
	})
	g.Go(func() error {
		items, err := api.VideoAds().List(ctx)
		s.VideoAds = len(items)
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return s, nil
}
