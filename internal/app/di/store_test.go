package di

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudvision_backend/internal/feature/imageanalysis/adapters/gemini"
	"cloudvision_backend/internal/feature/imageanalysis/adapters/handoff"
)

func TestNewResultStore(t *testing.T) {
	t.Parallel()

	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	assert.IsType(t, &handoff.RedisResultStore{}, NewResultStore(rdb, time.Minute))
	assert.IsType(t, &handoff.MemoryResultStore{}, NewResultStore(nil, time.Minute))
}

func TestNewDescriptionGenerator_Disabled(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewDescriptionGenerator(t.Context(), gemini.Config{Enabled: false}))
}

func TestNewWikimediaHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewWikimediaHTTPClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, wikimediaIdleConnsPerHost, tr.MaxIdleConnsPerHost)
	assert.False(t, tr.DisableCompression)
}
