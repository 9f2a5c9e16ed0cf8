package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	settings := TokenSettings{Secret: "test-secret", AccessTTL: time.Hour}

	pair, err := GenerateTokenPair(7, "provider", "alice", settings)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.EqualValues(t, 3600, pair.ExpiresIn)

	claims, err := ValidateToken(pair.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "provider", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "7", claims.Subject)

	_, err = ValidateToken(pair.AccessToken, "other-secret")
	assert.Error(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	settings := TokenSettings{Secret: "test-secret"}

	pair, err := GenerateTokenPair(1, "customer", "bob", settings)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(pair.AccessToken, "test-secret")
	assert.Error(t, err)

	claims, err := ValidateRefreshToken(pair.RefreshToken, "test-secret")
	require.NoError(t, err)
	assert.EqualValues(t, 1, claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := signToken(1, "customer", "bob", TokenTypeAccess, time.Now().Add(-2*time.Hour), time.Hour, "s")
	require.NoError(t, err)

	_, err = ValidateToken(token, "s")
	assert.Error(t, err)
}

func TestGetPaginationParamsClamps(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=-3&page_size=1000&sort=password&order=sideways", nil)

	p := GetPaginationParams(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
}

func TestPaginationBoundsAndMeta(t *testing.T) {
	p := &PaginationParams{Page: 2, PageSize: 10}

	start, end := p.Bounds(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = (&PaginationParams{Page: 5, PageSize: 10}).Bounds(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)

	meta := CreatePaginationMeta(p, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 3, *meta.NextPage)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-01-03T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 3, 8, 30, 0, 0, time.UTC), d)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestResizeToWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		src.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := ResizeToWidth(&buf, "car.png", 100)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)
	assert.Equal(t, ".png", out.Extension)
	assert.Equal(t, 100, out.Dimensions.Width)
	assert.Equal(t, 50, out.Dimensions.Height)

	_, err = ResizeToWidth(bytes.NewReader([]byte("nope")), "car.gif", 100)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
