package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/schedule"
)

// loadContract загружает OpenAPI-описание backend из testdata.
func loadContract(t *testing.T) routers.Router {
	t.Helper()
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("testdata/backend.yaml")
	if err != nil {
		t.Fatalf("загрузка контракта: %v", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		t.Fatalf("контракт невалиден: %v", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		t.Fatalf("создание роутера: %v", err)
	}
	return router
}

// contractServer проверяет каждый входящий запрос по контракту и
// отвечает пустым конвертом. Возвращает множество вызванных operationId.
func contractServer(t *testing.T, router routers.Router) (*httptest.Server, func() map[string]bool) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		route, params, err := router.FindRoute(r)
		if err != nil {
			t.Errorf("%s %s: маршрут не найден: %v", r.Method, r.URL.Path, err)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		// Части multipart (изображения, видео) проверяются в unit-тестах,
		// здесь только путь, метод и параметры.
		opts := &openapi3filter.Options{MultiError: true}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			opts.ExcludeRequestBody = true
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
			Options:    opts,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			t.Errorf("%s: запрос не соответствует контракту: %v", route.Operation.OperationID, err)
		}

		mu.Lock()
		seen[route.Operation.OperationID] = true
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case route.Operation.OperationID == "uploadImage":
			io.WriteString(w, `{"data":{"imageUrl":"/uploads/x.png"}}`)
		case r.Method == http.MethodGet:
			io.WriteString(w, `{"data":[]}`)
		default:
			io.WriteString(w, `{"data":{}}`)
		}
	})
	return server, func() map[string]bool {
		mu.Lock()
		defer mu.Unlock()
		return seen
	}
}

// TestContract проверяет, что все операции клиента соответствуют
// OpenAPI-описанию backend (пути, методы, параметры, тела).
func TestContract(t *testing.T) {
	router := loadContract(t)
	server, seen := contractServer(t, router)

	c, err := New(server.URL, "", 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	api := c.WithToken("tok")

	match := model.NewMatchDraft()
	match.CompetitionID, match.HomeTeamID, match.AwayTeamID = "c1", "t1", "t2"
	match.Slot = schedule.Slot{Date: "2025-03-10", Hour: 9, Minute: "30", Meridiem: schedule.PM}
	match.OperatorID = "op1"
	createMatch, err := match.Payload(time.UTC, true)
	if err != nil {
		t.Fatal(err)
	}
	updateMatch, _ := match.Payload(time.UTC, false)

	competition := model.NewCompetitionDraft()
	competition.Name, competition.Country, competition.Season = "Gulf Cup", "Iraq", "2025"

	team := model.NewTeamDraft()
	team.Name, team.Founded = "Zakho", "1987"

	player := model.NewPlayerDraft("t1")
	player.Name, player.ShirtNumber = "Ali", 10

	product := model.NewProductDraft()
	product.CategoryID, product.Name, product.Price = "cat1", "Shirt", 25000

	banner := model.NewBannerDraft()
	banner.Title = "Sale"

	img := &model.File{Name: "a.png", ContentType: "image/png", Data: []byte{1, 2}}
	slider := model.NewSliderDraft()
	slider.Image = img
	supervisor := model.NewSupervisorDraft()
	supervisor.Name = "Omar"
	ad := model.NewVideoAdDraft()
	ad.Video = &model.File{Name: "a.mp4", ContentType: "video/mp4", Data: []byte{3}}

	calls := []struct {
		name string
		call func() error
	}{
		{"login", func() error { _, err := c.Auth().Login(ctx, "a@b.c", "p"); return err }},
		{"listCompetitions", func() error { _, err := api.Admin().Competitions(ctx); return err }},
		{"createCompetition", func() error { return api.Admin().CreateCompetition(ctx, competition.Payload()) }},
		{"updateCompetition", func() error { return api.Admin().UpdateCompetition(ctx, "c1", competition.Payload()) }},
		{"deleteCompetition", func() error { return api.Admin().DeleteCompetition(ctx, "c1") }},
		{"listOperators", func() error { _, err := api.Admin().Operators(ctx); return err }},
		{"createOperator", func() error {
			return api.Admin().CreateOperator(ctx, model.OperatorDraft{Name: "op", Email: "op@x", Password: "p"})
		}},
		{"listEventLogs", func() error { _, err := api.Admin().EventLogs(ctx, 100); return err }},
		{"listMatches", func() error { _, err := api.Matches().List(ctx); return err }},
		{"createMatch", func() error { return api.Matches().Create(ctx, createMatch) }},
		{"updateMatch", func() error { return api.Matches().Update(ctx, "m1", updateMatch) }},
		{"updateMatchStatus", func() error { return api.Matches().UpdateStatus(ctx, "m1", model.MatchLive) }},
		{"deleteMatch", func() error { return api.Matches().Delete(ctx, "m1") }},
		{"listTeams", func() error { _, err := api.Teams().List(ctx, true); return err }},
		{"createTeam", func() error { return api.Teams().Create(ctx, team.Payload()) }},
		{"updateTeam", func() error { return api.Teams().Update(ctx, "t1", team.Payload()) }},
		{"deleteTeam", func() error { return api.Teams().Delete(ctx, "t1") }},
		{"addPlayer", func() error { return api.Teams().AddPlayer(ctx, "t1", player.Payload()) }},
		{"updatePlayer", func() error { return api.Teams().UpdatePlayer(ctx, "t1", "p1", player.Payload()) }},
		{"deletePlayer", func() error { return api.Teams().DeletePlayer(ctx, "t1", "p1") }},
		{"listProducts", func() error { _, err := api.Store().Products(ctx); return err }},
		{"listCategories", func() error { _, err := api.Store().Categories(ctx); return err }},
		{"createProduct", func() error { return api.Store().CreateProduct(ctx, product.Payload()) }},
		{"updateProduct", func() error { return api.Store().UpdateProduct(ctx, "p1", product.Payload()) }},
		{"deleteProduct", func() error { return api.Store().DeleteProduct(ctx, "p1") }},
		{"listBanners", func() error { _, err := api.Store().Banners(ctx); return err }},
		{"createBanner", func() error { return api.Store().CreateBanner(ctx, banner.Payload()) }},
		{"updateBanner", func() error { return api.Store().UpdateBanner(ctx, "b1", banner.Payload()) }},
		{"deleteBanner", func() error { return api.Store().DeleteBanner(ctx, "b1") }},
		{"uploadImage", func() error { _, err := api.Store().UploadImage(ctx, img); return err }},
		{"listOrders", func() error { _, err := api.Orders().List(ctx, model.OrderApproved); return err }},
		{"updateOrderStatus", func() error {
			return api.Orders().UpdateStatus(ctx, "o1", model.OrderDraft{}.StatusPayload(model.OrderApproved))
		}},
		{"listSliders", func() error { _, err := api.Sliders().List(ctx); return err }},
		{"createSlider", func() error { return api.Sliders().Create(ctx, slider.Form()) }},
		{"updateSlider", func() error { return api.Sliders().Update(ctx, "s1", slider.Form()) }},
		{"deleteSlider", func() error { return api.Sliders().Delete(ctx, "s1") }},
		{"listSupervisors", func() error { _, err := api.Supervisors().List(ctx); return err }},
		{"createSupervisor", func() error { return api.Supervisors().Create(ctx, supervisor.Form()) }},
		{"updateSupervisor", func() error { return api.Supervisors().Update(ctx, "s1", supervisor.Form()) }},
		{"deleteSupervisor", func() error { return api.Supervisors().Delete(ctx, "s1") }},
		{"listVideoAds", func() error { _, err := api.VideoAds().List(ctx); return err }},
		{"createVideoAd", func() error { return api.VideoAds().Create(ctx, ad.Form()) }},
		{"updateVideoAd", func() error { return api.VideoAds().SetActive(ctx, "v1", true) }},
		{"deleteVideoAd", func() error { return api.VideoAds().Delete(ctx, "v1") }},
	}

	for _, tc := range calls {
		if err := tc.call(); err != nil {
			t.Errorf("%s: %v", tc.name, err)
		}
	}

	got := seen()
	for _, tc := range calls {
		if !got[tc.name] {
			t.Errorf("операция %s не дошла до backend", tc.name)
		}
	}
}
