package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DisabledBehavesLikeEmptyCache(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]*Client{"empty addr": New("", "", 0, "p:"), "nil": nil} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.Enabled())
			assert.NoError(t, c.Ping(ctx))
			require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

			v, err := c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, v)

			assert.NoError(t, c.Delete(ctx, "k"))
			assert.NoError(t, c.Close())
		})
	}
}
