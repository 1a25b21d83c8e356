package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/security"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupGraphQL(t *testing.T, menuService *mocks.MockMenuService, userService *mocks.MockUserService) (*gin.Engine, *security.JWTProvider) {
	t.Helper()

	schema, err := BuildSchema(NewResolver(menuService, userService))
	if err != nil {
		t.Fatalf("BuildSchema() error = %v", err)
	}

	jwtProvider := security.NewJWTProvider(&config.JWTConfig{
		Secret:               "test-secret-key-for-testing-purposes-only",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "test",
	})

	cfg := DefaultGraphQLConfig()
	cfg.Enabled = true
	handler := NewHandler(schema, cfg, jwtProvider, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, jwtProvider
}

type graphqlResult struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func execQuery(t *testing.T, router *gin.Engine, query, token string) *graphqlResult {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("graphql status = %v, want %v", w.Code, http.StatusOK)
	}

	var result graphqlResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return &result
}

func TestHandler_MenuQuery(t *testing.T) {
	menuService := mocks.NewMockMenuService()
	menuService.ListFunc = func(_ context.Context, page, size int, category string) (*response.PagedResponse[response.MenuItemResponse], error) {
		if category != "mains" {
			t.Errorf("List() category = %q, want %q", category, "mains")
		}
		paged := response.NewPagedResponse([]response.MenuItemResponse{
			{ID: 1, Name: "Shakshuka", Category: "mains", Price: 12.5, Available: true},
		}, page, size, 1)
		return &paged, nil
	}
	router, _ := setupGraphQL(t, menuService, mocks.NewMockUserService())

	result := execQuery(t, router, `query { menu(category: "mains") { items { id name price } pageInfo { totalItems hasNext } } }`, "")

	if len(result.Errors) != 0 {
		t.Fatalf("menu query errors = %v", result.Errors)
	}

	var menu struct {
		Items []struct {
			ID    string  `json:"id"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"items"`
		PageInfo struct {
			TotalItems int  `json:"totalItems"`
			HasNext    bool `json:"hasNext"`
		} `json:"pageInfo"`
	}
	if err := json.Unmarshal(result.Data["menu"], &menu); err != nil {
		t.Fatalf("unmarshal menu: %v", err)
	}
	if len(menu.Items) != 1 || menu.Items[0].Name != "Shakshuka" {
		t.Errorf("menu items = %+v, want one Shakshuka", menu.Items)
	}
	if menu.PageInfo.TotalItems != 1 || menu.PageInfo.HasNext {
		t.Errorf("pageInfo = %+v", menu.PageInfo)
	}
}

func TestHandler_MenuItemQuery_BadID(t *testing.T) {
	router, _ := setupGraphQL(t, mocks.NewMockMenuService(), mocks.NewMockUserService())

	result := execQuery(t, router, `query { menuItem(id: "abc") { id name } }`, "")

	if len(result.Errors) == 0 {
		t.Fatal("menuItem query with non-numeric ID should produce an error")
	}
}

func TestHandler_MeQuery_RequiresToken(t *testing.T) {
	router, jwtProvider := setupGraphQL(t, mocks.NewMockMenuService(), mocks.NewMockUserService())

	result := execQuery(t, router, `query { me { id email } }`, "")
	if len(result.Errors) == 0 {
		t.Fatal("me query without a token should produce an error")
	}

	token, err := jwtProvider.GenerateAccessToken(&entity.User{
		ID:    9,
		Email: "user@savora.io",
		Role:  entity.RoleUser,
	}, "session-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	result = execQuery(t, router, `query { me { id email } }`, token)
	if len(result.Errors) != 0 {
		t.Fatalf("me query errors = %v", result.Errors)
	}

	var me struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(result.Data["me"], &me); err != nil {
		t.Fatalf("unmarshal me: %v", err)
	}
	if me.ID != "9" {
		t.Errorf("me id = %q, want %q", me.ID, "9")
	}
}

func TestHandler_QueryViaGet(t *testing.T) {
	router, _ := setupGraphQL(t, mocks.NewMockMenuService(), mocks.NewMockUserService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/graphql?query="+`{menu{pageInfo{page}}}`, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET graphql status = %v, want %v", w.Code, http.StatusOK)
	}

	var result graphqlResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("GET query errors = %v", result.Errors)
	}
}

func TestHandler_Playground(t *testing.T) {
	router, _ := setupGraphQL(t, mocks.NewMockMenuService(), mocks.NewMockUserService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/playground", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("playground status = %v, want %v", w.Code, http.StatusOK)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("GraphQLPlayground")) {
		t.Error("playground response does not contain the playground bootstrap")
	}
}
