// FILE: lixenwraith/rlog/pii_test.go
package rlog

import (
	"errors"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var tokenPattern = regexp.MustCompile(`^\{![0-9a-f]{16}!\}$`)

func TestRedactorTokenFormat(t *testing.T) {
	r := NewRedactor(8, 0)

	token := r.Replace("alice@example.com")
	assert.Regexp(t, tokenPattern, token)
	// sha256("alice@example.com") prefix
	digest, err := sha256Hex("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "{!"+digest[:16]+"!}", token)

	assert.Equal(t, token, r.Replace("alice@example.com"), "stable for the same input")
	assert.NotEqual(t, token, r.Replace("bob@example.com"))
}

func TestRedactorCachesTokens(t *testing.T) {
	calls := 0
	r := NewRedactor(8, 0)
	r.SetHashFunc(func(text string) (string, error) {
		calls++
		return sha256Hex(text)
	})

	r.Replace("x")
	r.Replace("x")
	r.Replace("y")

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, r.Len())
}

func TestRedactorEvictsBySize(t *testing.T) {
	r := NewRedactor(2, 0)

	r.Replace("a")
	r.Replace("b")
	r.Replace("c")

	list := r.List()
	assert.Len(t, list, 2)
	assert.NotContains(t, list, "a")
}

func TestRedactorExpiresByTTL(t *testing.T) {
	r := NewRedactor(8, 20*time.Millisecond)
	r.Replace("short-lived")
	require.Equal(t, 1, r.Len())

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRedactorHashFailure(t *testing.T) {
	r := NewRedactor(8, 0)

	r.SetHashFunc(func(string) (string, error) { return "", errors.New("no entropy") })
	assert.Equal(t, "{!!}", r.Replace("secret"))

	r.SetHashFunc(func(string) (string, error) { return "abc", nil })
	assert.Equal(t, "{!!}", r.Replace("secret"), "short digests are rejected")
	assert.Zero(t, r.Len(), "failures are not cached")

	r.SetHashFunc(nil)
	assert.Regexp(t, tokenPattern, r.Replace("secret"))
}

func TestRedactorListIsACopy(t *testing.T) {
	r := NewRedactor(8, 0)
	token := r.Replace("k")

	list := r.List()
	list["k"] = "tampered"
	delete(list, "k")

	assert.Equal(t, map[string]string{"k": token}, r.List())
}

func TestRedactorResize(t *testing.T) {
	r := NewRedactor(8, 0)
	r.Replace("a")
	r.Replace("b")

	r.Resize(8, 0)
	assert.Equal(t, 2, r.Len(), "same bounds keep the cache")

	r.Resize(1, 0)
	assert.Equal(t, []string{"b"}, keys(r.List()), "shrinking evicts the oldest")

	r.Resize(1, time.Minute)
	assert.Zero(t, r.Len(), "a new ttl drops cached tokens")

	r.Resize(0, time.Minute)
	r.Replace("c")
	r.Replace("d")
	assert.Equal(t, 2, r.Len())
}

func TestRedactorExpiryUsesClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRedactor(8, time.Minute)
	r.now = func() time.Time { return now }

	calls := 0
	r.SetHashFunc(func(text string) (string, error) {
		calls++
		return sha256Hex(text)
	})

	token := r.Replace("card")
	now = now.Add(59 * time.Second)
	assert.Equal(t, token, r.Replace("card"))
	assert.Equal(t, 1, calls)

	now = now.Add(time.Second)
	assert.Empty(t, r.List())
	assert.Equal(t, token, r.Replace("card"), "expired tokens are recomputed identically")
	assert.Equal(t, 2, calls)
}

func TestRedactorResizeStartsNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := NewRedactor(8, time.Second)
	for i := 1; i <= 5; i++ {
		r.Resize(8+i, time.Duration(i)*time.Second)
		r.Replace("x")
	}
	assert.Equal(t, 1, r.Len())
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestControllerReplacePIIData(t *testing.T) {
	c, _ := createTestController(t, nil)

	assert.Equal(t, "", c.ReplacePIIData(""))
	assert.Equal(t, "4111-1111", c.ReplacePIIData("4111-1111"), "disabled returns the input")
	assert.Empty(t, c.PIIDataList())

	c.SetPIIHashEnabled(true)
	token := c.ReplacePIIData("4111-1111")
	assert.Regexp(t, tokenPattern, token)
	assert.Equal(t, map[string]string{"4111-1111": token}, c.PIIDataList())
	assert.Equal(t, "", c.ReplacePIIData(""))

	c.Close()
	assert.Empty(t, c.PIIDataList(), "close purges the cache")
}

func TestWithPIIHashFunc(t *testing.T) {
	c, _ := createTestController(t, func(cfg *Config) {
		cfg.PIIHashEnabled = true
	}, WithPIIHashFunc(func(string) (string, error) {
		return "0123456789abcdef0123", nil
	}))

	assert.Equal(t, "{!0123456789abcdef!}", c.ReplacePIIData("anything"))
}
