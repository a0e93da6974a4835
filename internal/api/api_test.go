package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreitas/storegate/internal/api/apierr"
	"github.com/mfreitas/storegate/internal/api/response"
	"github.com/mfreitas/storegate/internal/dependencies/mocks"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/auth"
	"github.com/mfreitas/storegate/internal/services/files"
	"github.com/mfreitas/storegate/internal/services/product"
	"github.com/mfreitas/storegate/internal/services/seed"
	"github.com/mfreitas/storegate/internal/services/token"
	"github.com/mfreitas/storegate/internal/storage/memory"
	"github.com/mfreitas/storegate/internal/testutil"
)

type APISuite struct {
	suite.Suite
	server  *httptest.Server
	storage *memory.Storage
	clock   *mocks.MockClock
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	tokenCfg := token.DefaultConfig()
	tokenCfg.Secret = "test-secret"
	tokens, err := token.New(tokenCfg, s.clock)
	s.Require().NoError(err)

	authService := auth.New(s.storage, tokens, s.clock)
	productService := product.New(s.storage, s.clock)
	seedService := seed.New(s.storage, productService, s.clock)

	filesCfg := files.DefaultConfig()
	filesCfg.Dir = s.T().TempDir()
	fileService, err := files.New(filesCfg)
	s.Require().NoError(err)

	router := NewRouter(RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    authService,
		ProductService: productService,
		FileService:    fileService,
		SeedService:    seedService,
	})

	s.server = httptest.NewServer(router)
	s.T().Cleanup(s.server.Close)
}

// do executes a JSON request against the test server
func (s *APISuite) do(method, path, bearer string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *APISuite) errorCode(resp *http.Response) string {
	var er apierr.ErrorResponse
	s.decode(resp, &er)
	return er.Error.Code
}

// registerUser registers an account and returns its auth response
func (s *APISuite) registerUser(email string) response.AuthResponse {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  "Abc12345",
		"full_name": "Test User",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var ar response.AuthResponse
	s.decode(resp, &ar)
	return ar
}

// adminToken promotes a fresh user to admin and returns a token for them
func (s *APISuite) adminToken() string {
	ar := s.registerUser("admin@example.com")

	stored, err := s.storage.GetUser(context.Background(), model.UserID(ar.User.ID))
	s.Require().NoError(err)
	stored.Roles = append(stored.Roles, model.RoleAdmin)
	s.Require().NoError(s.storage.SaveUser(context.Background(), stored))

	return ar.Token
}

func (s *APISuite) TestHealth() {
	resp := s.do(http.MethodGet, "/api/v1/health", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decode(resp, &body)
	s.Equal("ok", body["status"])
}

func (s *APISuite) TestRegisterAndLogin() {
	ar := s.registerUser("ada@example.com")
	s.Equal("ada@example.com", ar.User.Email)
	s.NotEmpty(ar.Token)

	resp := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "Abc12345",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var login response.AuthResponse
	s.decode(resp, &login)
	s.Equal(ar.User.ID, login.User.ID)
}

func (s *APISuite) TestRegisterValidation() {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     "ada@example.com",
		"password":  "short",
		"full_name": "Ada",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(resp))
}

func (s *APISuite) TestRegisterDuplicateEmail() {
	s.registerUser("ada@example.com")

	resp := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     "ada@example.com",
		"password":  "Abc12345",
		"full_name": "Other",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal(apierr.CodeEmailExists, s.errorCode(resp))
}

func (s *APISuite) TestLoginBadPassword() {
	s.registerUser("ada@example.com")

	resp := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal(apierr.CodeInvalidCredentials, s.errorCode(resp))
}

func (s *APISuite) TestCheckStatus() {
	ar := s.registerUser("ada@example.com")

	resp := s.do(http.MethodGet, "/api/v1/auth/check-status", ar.Token, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var renewed response.AuthResponse
	s.decode(resp, &renewed)
	s.Equal(ar.User.ID, renewed.User.ID)
	s.NotEmpty(renewed.Token)
}

func (s *APISuite) TestCheckStatusRequiresAuth() {
	resp := s.do(http.MethodGet, "/api/v1/auth/check-status", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/auth/check-status", "garbage-token", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestProductLifecycle() {
	ar := s.registerUser("ada@example.com")

	// Create
	resp := s.do(http.MethodPost, "/api/v1/products", ar.Token, map[string]any{
		"title":  "Wool Shirt",
		"price":  24.5,
		"gender": "unisex",
		"sizes":  []string{"S", "M"},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created response.Product
	s.decode(resp, &created)
	s.Equal("wool_shirt", created.Slug)
	s.Equal(ar.User.ID, created.OwnerID)

	// Get by ID and by slug
	resp = s.do(http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/products/wool_shirt", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Update
	resp = s.do(http.MethodPatch, "/api/v1/products/wool_shirt", ar.Token, map[string]any{
		"price": 30,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var updated response.Product
	s.decode(resp, &updated)
	s.Equal(30.0, updated.Price)
	s.Equal("Wool Shirt", updated.Title)
}

func (s *APISuite) TestProductCreateRequiresAuth() {
	resp := s.do(http.MethodPost, "/api/v1/products", "", map[string]any{
		"title":  "Wool Shirt",
		"gender": "men",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestProductListPagination() {
	ar := s.registerUser("ada@example.com")
	for i := 0; i < 5; i++ {
		resp := s.do(http.MethodPost, "/api/v1/products", ar.Token, map[string]any{
			"title":  fmt.Sprintf("Shirt %d", i),
			"gender": "men",
		})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.do(http.MethodGet, "/api/v1/products?limit=2&offset=2", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var page []response.Product
	s.decode(resp, &page)
	s.Require().Len(page, 2)
	s.Equal("Shirt 2", page[0].Title)
	s.Equal("Shirt 3", page[1].Title)

	resp = s.do(http.MethodGet, "/api/v1/products?limit=nope", "", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestProductNotFound() {
	resp := s.do(http.MethodGet, "/api/v1/products/no_such_product", "", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal(apierr.CodeProductNotFound, s.errorCode(resp))
}

func (s *APISuite) TestProductDeleteRequiresAdmin() {
	ar := s.registerUser("ada@example.com")

	resp := s.do(http.MethodPost, "/api/v1/products", ar.Token, map[string]any{
		"title":  "Wool Shirt",
		"gender": "men",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created response.Product
	s.decode(resp, &created)

	// Plain user is rejected
	resp = s.do(http.MethodDelete, "/api/v1/products/"+created.ID, ar.Token, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal(apierr.CodeForbidden, s.errorCode(resp))

	// Admin can delete
	admin := s.adminToken()
	resp = s.do(http.MethodDelete, "/api/v1/products/"+created.ID, admin, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestSeedRequiresAdmin() {
	ar := s.registerUser("ada@example.com")

	resp := s.do(http.MethodPost, "/api/v1/seed", ar.Token, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func (s *APISuite) TestSeedPopulatesCatalogue() {
	admin := s.adminToken()

	resp := s.do(http.MethodPost, "/api/v1/seed", admin, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result response.SeedResponse
	s.decode(resp, &result)
	s.Positive(result.Users)
	s.Positive(result.Products)

	resp = s.do(http.MethodGet, "/api/v1/products?limit=100", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var page []response.Product
	s.decode(resp, &page)
	s.Len(page, result.Products)
}

func (s *APISuite) TestFileUploadAndServe() {
	ar := s.registerUser("ada@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "shirt.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("png-bytes"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/v1/files/product", &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ar.Token)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var uploaded response.UploadResponse
	s.decode(resp, &uploaded)
	s.NotEmpty(uploaded.FileName)

	resp = s.do(http.MethodGet, uploaded.URL, "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Require().NoError(err)
	s.Equal("png-bytes", string(data))
}

func (s *APISuite) TestFileUploadRejectsUnsupportedType() {
	ar := s.registerUser("ada@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "script.sh")
	s.Require().NoError(err)
	_, err = part.Write([]byte("#!/bin/sh"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/v1/files/product", &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ar.Token)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(apierr.CodeUnsupportedFileType, s.errorCode(resp))
}

func (s *APISuite) TestExpiredTokenRejected() {
	ar := s.registerUser("ada@example.com")

	s.clock.Advance(3 * time.Hour)

	resp := s.do(http.MethodGet, "/api/v1/auth/check-status", ar.Token, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
