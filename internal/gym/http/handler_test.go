package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
	"github.com/nekogravitycat/gym-trial-backend/internal/trainer"
)

const gymID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"

var owner = authz.Identity{ID: "22222222-2222-2222-2222-222222222222", Role: authz.RoleGymOwner}

func init() {
	gin.SetMode(gin.TestMode)
}

type MockGyms struct {
	mock.Mock
}

func (m *MockGyms) Create(ctx context.Context, caller authz.Identity, req gym.CreateRequest) (*gym.Gym, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGyms) GetByID(ctx context.Context, id string) (*gym.Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGyms) List(ctx context.Context, filter gym.Filter) ([]*gym.Gym, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*gym.Gym), args.Int(1), args.Error(2)
}

func (m *MockGyms) Update(ctx context.Context, caller authz.Identity, id string, req gym.UpdateRequest) (*gym.Gym, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

func (m *MockGyms) Delete(ctx context.Context, caller authz.Identity, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockGyms) SetCover(ctx context.Context, caller authz.Identity, id, fileID string) error {
	return m.Called(ctx, caller, id, fileID).Error(0)
}

func (m *MockGyms) GetForMutation(ctx context.Context, caller authz.Identity, id string) (*gym.Gym, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gym.Gym), args.Error(1)
}

type MockTrainers struct {
	mock.Mock
}

func (m *MockTrainers) Add(ctx context.Context, caller authz.Identity, gymID string, req trainer.AddRequest) (*trainer.Trainer, error) {
	args := m.Called(ctx, caller, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

func (m *MockTrainers) ListByGym(ctx context.Context, gymID string) ([]*trainer.Trainer, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trainer.Trainer), args.Error(1)
}

func (m *MockTrainers) Remove(ctx context.Context, caller authz.Identity, gymID, trainerID string) error {
	return m.Called(ctx, caller, gymID, trainerID).Error(0)
}

func newRouter(gyms gym.Service, trainers trainer.Service) *gin.Engine {
	h := NewHandler(gyms, trainers, nil, nil, 1<<20)
	identity := func(c *gin.Context) {
		auth.SetIdentity(c, owner)
		c.Next()
	}

	r := gin.New()
	RegisterRoutes(&r.RouterGroup, h, identity)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListGyms(t *testing.T) {
	t.Run("binds discovery filters", func(t *testing.T) {
		gyms := new(MockGyms)
		gyms.On("List", mock.Anything, mock.MatchedBy(func(f gym.Filter) bool {
			return f.Location == "central" &&
				f.MinPrice != nil && *f.MinPrice == 100 &&
				f.MaxPrice != nil && *f.MaxPrice == 500 &&
				f.HasTrial != nil && *f.HasTrial &&
				f.Skip == 0 && f.Limit == 20
		})).Return([]*gym.Gym{{ID: gymID, Name: "Iron Temple", TrialAvailable: true}}, 1, nil)

		w := do(newRouter(gyms, new(MockTrainers)), http.MethodGet, "/gyms?location=central&min_price=100&max_price=500&has_trial=true", "")
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Items []GymResponse `json:"items"`
			Limit int           `json:"limit"`
			Total int           `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 20, page.Limit)
		require.Len(t, page.Items, 1)
		assert.Nil(t, page.Items[0].CoverURL)
	})

	t.Run("fractional price bounds", func(t *testing.T) {
		gyms := new(MockGyms)
		gyms.On("List", mock.Anything, mock.MatchedBy(func(f gym.Filter) bool {
			return f.MinPrice != nil && *f.MinPrice == 49.5 &&
				f.MaxPrice != nil && *f.MaxPrice == 100
		})).Return([]*gym.Gym{{ID: gymID, SubscriptionFee: 50}}, 1, nil)

		w := do(newRouter(gyms, new(MockTrainers)), http.MethodGet, "/gyms?min_price=49.5&max_price=100", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		gyms.AssertExpectations(t)
	})

	t.Run("inverted price range", func(t *testing.T) {
		gyms := new(MockGyms)
		gyms.On("List", mock.Anything, mock.Anything).Return(nil, 0, gym.ErrInvalidPriceRange)

		w := do(newRouter(gyms, new(MockTrainers)), http.MethodGet, "/gyms?min_price=500&max_price=100", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	invalid := []string{"min_price=-1", "max_price=-0.5", "min_price=cheap", "limit=101", "has_trial=maybe", "owner_id=nope"}
	for _, q := range invalid {
		t.Run(q, func(t *testing.T) {
			gyms := new(MockGyms)
			w := do(newRouter(gyms, new(MockTrainers)), http.MethodGet, "/gyms?"+q, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			gyms.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestGetGym(t *testing.T) {
	cover := "cccccccc-cccc-cccc-cccc-cccccccccccc"
	specialty := "kettlebells"

	gyms := new(MockGyms)
	gyms.On("GetByID", mock.Anything, gymID).Return(&gym.Gym{ID: gymID, OwnerID: owner.ID, OwnerName: "Olive", CoverFileID: &cover}, nil)
	trainers := new(MockTrainers)
	trainers.On("ListByGym", mock.Anything, gymID).Return([]*trainer.Trainer{{ID: "t1", GymID: gymID, Name: "Kim", Specialty: &specialty, Fee: 300}}, nil)

	w := do(newRouter(gyms, trainers), http.MethodGet, "/gyms/"+gymID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp GymDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Olive", resp.Owner.Name)
	require.NotNil(t, resp.CoverURL)
	assert.Contains(t, *resp.CoverURL, cover)
	require.Len(t, resp.Trainers, 1)
	assert.Equal(t, "Kim", resp.Trainers[0].Name)

	missing := new(MockGyms)
	missing.On("GetByID", mock.Anything, gymID).Return(nil, gym.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, do(newRouter(missing, new(MockTrainers)), http.MethodGet, "/gyms/"+gymID, "").Code)
}

func TestCreateGym(t *testing.T) {
	t.Run("no trial when omitted", func(t *testing.T) {
		gyms := new(MockGyms)
		gyms.On("Create", mock.Anything, owner, mock.MatchedBy(func(req gym.CreateRequest) bool {
			return req.Name == "Iron Temple" && req.SubscriptionFee == 50 && !req.TrialAvailable
		})).Return(&gym.Gym{ID: gymID, Name: "Iron Temple"}, nil)

		w := do(newRouter(gyms, new(MockTrainers)), http.MethodPost, "/gyms",
			`{"name":"Iron Temple","address":"1 Main St","subscription_fee":50}`)
		require.Equal(t, http.StatusCreated, w.Code)
		gyms.AssertExpectations(t)

		var resp GymResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.TrialAvailable)
	})

	t.Run("explicit trial", func(t *testing.T) {
		gyms := new(MockGyms)
		gyms.On("Create", mock.Anything, owner, mock.MatchedBy(func(req gym.CreateRequest) bool {
			return req.SubscriptionFee == 0 && req.TrialAvailable
		})).Return(&gym.Gym{ID: gymID, TrialAvailable: true}, nil)

		w := do(newRouter(gyms, new(MockTrainers)), http.MethodPost, "/gyms",
			`{"name":"Iron Temple","address":"1 Main St","subscription_fee":0,"trial_available":true}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		gyms.AssertExpectations(t)
	})

	badBodies := map[string]string{
		"missing fee":   `{"name":"Iron Temple","address":"1 Main St"}`,
		"negative fee":  `{"name":"Iron Temple","address":"1 Main St","subscription_fee":-5}`,
		"missing name":  `{"address":"1 Main St","subscription_fee":10}`,
		"bad latitude":  `{"name":"Iron Temple","address":"1 Main St","subscription_fee":10,"latitude":91}`,
		"bad owner id":  `{"name":"Iron Temple","address":"1 Main St","subscription_fee":10,"owner_id":"x"}`,
		"not json body": `name=Iron`,
	}
	for name, body := range badBodies {
		t.Run(name, func(t *testing.T) {
			gyms := new(MockGyms)
			w := do(newRouter(gyms, new(MockTrainers)), http.MethodPost, "/gyms", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("seeker forbidden", func(t *testing.T) {
		gyms := new(MockGyms)
		gyms.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, authz.ErrForbidden)

		w := do(newRouter(gyms, new(MockTrainers)), http.MethodPost, "/gyms",
			`{"name":"Iron Temple","address":"1 Main St","subscription_fee":10}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteGym(t *testing.T) {
	gyms := new(MockGyms)
	gyms.On("Delete", mock.Anything, owner, gymID).Return(nil)

	w := do(newRouter(gyms, new(MockTrainers)), http.MethodDelete, "/gyms/"+gymID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	gyms.AssertExpectations(t)
}
