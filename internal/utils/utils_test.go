package utils

import (
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_GuestRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Identity{SessionID: "abc"}, time.Hour)
	require.NoError(t, err)

	id, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "abc", id.SessionID)
	assert.False(t, id.IsUser())
}

func TestToken_UserRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken("secret", Identity{SessionID: "abc", UserID: userID, Email: "a@b.kz"}, time.Hour)
	require.NoError(t, err)

	id, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.True(t, id.IsUser())
	assert.Equal(t, userID, id.UserID)
	assert.Equal(t, "a@b.kz", id.Email)
}

func TestToken_Rejects(t *testing.T) {
	_, err := GenerateToken("secret", Identity{}, time.Hour)
	assert.Error(t, err)

	token, err := GenerateToken("secret", Identity{SessionID: "abc"}, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken("other", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", Identity{SessionID: "abc"}, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", Pagination{Page: 3, Limit: 10, Offset: 20}},
		{"?page=-1&limit=0", Pagination{Page: 1, Limit: 20, Offset: 0}},
		{"?page=x&limit=y", Pagination{Page: 1, Limit: 20, Offset: 0}},
		{"?page=2&limit=5000", Pagination{Page: 2, Limit: 100, Offset: 100}},
		{"?page=4611686018427387904&limit=4", Pagination{Page: maxPage, Limit: 4, Offset: (maxPage - 1) * 4}},
	}

	for _, tt := range tests {
		app := fiber.New()
		var got Pagination
		app.Get("/", func(c *fiber.Ctx) error {
			got = ParsePagination(c)
			return nil
		})
		_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, Paginate(items, Pagination{Page: 2, Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, Paginate(items, Pagination{Page: 3, Limit: 2, Offset: 4}))
	assert.Empty(t, Paginate(items, Pagination{Page: 4, Limit: 2, Offset: 6}))
	assert.Empty(t, Paginate(items, Pagination{Page: 2, Limit: 4, Offset: -4}))
	assert.Equal(t, []int{2, 3, 4, 5}, Paginate(items, Pagination{Page: 2, Limit: math.MaxInt, Offset: 1}))
}
