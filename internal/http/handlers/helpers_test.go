package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/services"
	"github.com/tbourn/foodgram-backend/internal/shopping"
)

//
// Stub services
//

type stubUsers struct {
	register     func(context.Context, services.NewUser) (*domain.User, error)
	get          func(context.Context, uint, uint) (*services.UserCard, error)
	listPage     func(context.Context, uint, int, int) ([]services.UserCard, int64, error)
	setAvatar    func(context.Context, uint, string) (string, error)
	deleteAvatar func(context.Context, uint) error
	setPassword  func(context.Context, uint, string, string) error
}

func (s *stubUsers) Register(ctx context.Context, in services.NewUser) (*domain.User, error) {
	return s.register(ctx, in)
}
func (s *stubUsers) Get(ctx context.Context, viewerID, id uint) (*services.UserCard, error) {
	return s.get(ctx, viewerID, id)
}
func (s *stubUsers) ListPage(ctx context.Context, viewerID uint, page, size int) ([]services.UserCard, int64, error) {
	return s.listPage(ctx, viewerID, page, size)
}
func (s *stubUsers) SetAvatar(ctx context.Context, uid uint, data string) (string, error) {
	return s.setAvatar(ctx, uid, data)
}
func (s *stubUsers) DeleteAvatar(ctx context.Context, uid uint) error {
	return s.deleteAvatar(ctx, uid)
}
func (s *stubUsers) SetPassword(ctx context.Context, uid uint, cur, next string) error {
	return s.setPassword(ctx, uid, cur, next)
}

type stubSubs struct {
	subscribe   func(context.Context, uint, uint, int) (*services.AuthorCard, error)
	unsubscribe func(context.Context, uint, uint) error
	listPage    func(context.Context, uint, int, int, int) ([]services.AuthorCard, int64, error)
}

func (s *stubSubs) Subscribe(ctx context.Context, uid, aid uint, limit int) (*services.AuthorCard, error) {
	return s.subscribe(ctx, uid, aid, limit)
}
func (s *stubSubs) Unsubscribe(ctx context.Context, uid, aid uint) error {
	return s.unsubscribe(ctx, uid, aid)
}
func (s *stubSubs) ListPage(ctx context.Context, uid uint, page, size, limit int) ([]services.AuthorCard, int64, error) {
	return s.listPage(ctx, uid, page, size, limit)
}

type stubIngredients struct {
	list func(context.Context, string) ([]domain.Ingredient, error)
	get  func(context.Context, uint) (*domain.Ingredient, error)
}

func (s *stubIngredients) List(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	return s.list(ctx, prefix)
}
func (s *stubIngredients) Get(ctx context.Context, id uint) (*domain.Ingredient, error) {
	return s.get(ctx, id)
}

type stubRecipes struct {
	create      func(context.Context, uint, services.RecipeInput, services.IdempotencyKey) (*services.RecipeCard, error)
	replay      func(context.Context, uint, services.IdempotencyKey) (*services.RecipeCard, int, error)
	update      func(context.Context, uint, uint, services.RecipeInput) (*services.RecipeCard, error)
	delete      func(context.Context, uint, uint) error
	get         func(context.Context, uint, uint) (*services.RecipeCard, error)
	listPage    func(context.Context, uint, services.RecipeQuery, int, int) ([]services.RecipeCard, int64, error)
	listVersion func(context.Context, uint, services.RecipeQuery) (string, error)
}

func (s *stubRecipes) Create(ctx context.Context, uid uint, in services.RecipeInput, idem services.IdempotencyKey) (*services.RecipeCard, error) {
	return s.create(ctx, uid, in, idem)
}
func (s *stubRecipes) Replay(ctx context.Context, uid uint, idem services.IdempotencyKey) (*services.RecipeCard, int, error) {
	if s.replay == nil {
		return nil, 0, nil
	}
	return s.replay(ctx, uid, idem)
}
func (s *stubRecipes) Update(ctx context.Context, uid, id uint, in services.RecipeInput) (*services.RecipeCard, error) {
	return s.update(ctx, uid, id, in)
}
func (s *stubRecipes) Delete(ctx context.Context, uid, id uint) error {
	return s.delete(ctx, uid, id)
}
func (s *stubRecipes) Get(ctx context.Context, viewerID, id uint) (*services.RecipeCard, error) {
	return s.get(ctx, viewerID, id)
}
func (s *stubRecipes) ListPage(ctx context.Context, viewerID uint, q services.RecipeQuery, page, size int) ([]services.RecipeCard, int64, error) {
	return s.listPage(ctx, viewerID, q, page, size)
}
func (s *stubRecipes) ListVersion(ctx context.Context, viewerID uint, q services.RecipeQuery) (string, error) {
	if s.listVersion == nil {
		return "v1", nil
	}
	return s.listVersion(ctx, viewerID, q)
}

type stubRelation struct {
	add    func(context.Context, uint, uint) (*domain.Recipe, error)
	remove func(context.Context, uint, uint) error
}

func (s *stubRelation) Add(ctx context.Context, uid, rid uint) (*domain.Recipe, error) {
	return s.add(ctx, uid, rid)
}
func (s *stubRelation) Remove(ctx context.Context, uid, rid uint) error {
	return s.remove(ctx, uid, rid)
}

type stubLinks struct {
	link    func(context.Context, uint) (string, error)
	resolve func(context.Context, string) (uint, error)
}

func (s *stubLinks) Link(ctx context.Context, id uint) (string, error) { return s.link(ctx, id) }
func (s *stubLinks) Resolve(ctx context.Context, code string) (uint, error) {
	return s.resolve(ctx, code)
}
func (s *stubLinks) RecipeURL(id uint) string {
	return "http://front.test/recipes/" + strconv.FormatUint(uint64(id), 10)
}

type stubShopping struct {
	list func(context.Context, uint) ([]shopping.Item, error)
}

func (s *stubShopping) List(ctx context.Context, uid uint) ([]shopping.Item, error) {
	return s.list(ctx, uid)
}

//
// Harness
//

// newHandlers applies test defaults for media URLs and page sizes.
func newHandlers(t *testing.T, d Deps) *Handlers {
	t.Helper()
	if d.MediaURL == nil {
		d.MediaURL = func(rel string) string { return "http://media.test/" + rel }
	}
	if d.PageSize == 0 {
		d.PageSize = 6
		d.MaxPageSize = 50
	}
	return New(d)
}

// newEngine returns a test engine. A non-zero uid is installed as the caller.
func newEngine(uid uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-test")
		if uid != 0 {
			c.Set("userID", uid)
		}
		c.Next()
	})
	return r
}

func do(r http.Handler, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d body=%s", w.Code, status, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != code {
		t.Fatalf("code=%q want %q", er.Code, code)
	}
	if er.RequestID != "rid-test" {
		t.Fatalf("request_id=%q", er.RequestID)
	}
	return er
}

func sampleRecipe(id uint) domain.Recipe {
	return domain.Recipe{
		ID:          id,
		AuthorID:    7,
		Name:        "Borscht",
		Image:       "recipes/b.png",
		Text:        "Boil.",
		CookingTime: 90,
		Author:      domain.User{ID: 7, Email: "a@x.io", Username: "chef", FirstName: "A", LastName: "B"},
		Ingredients: []domain.RecipeIngredient{{
			IngredientID: 3,
			Amount:       2,
			Ingredient:   domain.Ingredient{ID: 3, Name: "beet", MeasurementUnit: "pc"},
		}},
	}
}
