// internal/adapters/redis_adapter/scanner_test.go
package redis_a_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/apotek-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/apotek-pos/test/helpers"
)

type recorder struct {
	mu     sync.Mutex
	texts  []string
	errors []error
}

func (r *recorder) decode(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

func (r *recorder) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts)
}

func TestPubSubScanner_DeliversPublishedBarcodes(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	scanner := redis_a.NewPubSubScanner(tr.Client, "pos:scans", helpers.TestLogger())
	ctx := context.Background()

	rec := &recorder{}
	session, err := scanner.Start(ctx, rec.decode, rec.fail)
	require.NoError(t, err)
	defer session.Stop()

	require.NoError(t, scanner.Push(ctx, "111"))
	require.NoError(t, scanner.Push(ctx, " 222 \n"))
	require.NoError(t, scanner.Push(ctx, "   "))

	helpers.AssertEventuallyWithTimeout(t, func() bool { return rec.count() == 2 }, 2*time.Second, "two scans delivered")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"111", "222"}, rec.texts)
	assert.Len(t, rec.errors, 1)
}

func TestPubSubScanner_StopDropsLaterMessages(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	scanner := redis_a.NewPubSubScanner(tr.Client, "pos:scans", helpers.TestLogger())
	ctx := context.Background()

	rec := &recorder{}
	session, err := scanner.Start(ctx, rec.decode, rec.fail)
	require.NoError(t, err)

	require.NoError(t, session.Stop())
	require.NoError(t, session.Stop(), "stop is idempotent")

	require.NoError(t, scanner.Push(ctx, "111"))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, rec.count())
}
