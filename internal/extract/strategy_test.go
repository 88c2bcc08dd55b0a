package extract_test

import (
	"context"
	"testing"

	"x-impressions/internal/dom"
	"x-impressions/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, body string) *dom.Snapshot {
	t.Helper()
	doc, err := dom.ParseSnapshot("<html><body>" + body + "</body></html>")
	require.NoError(t, err)
	return doc
}

func TestRun_EachMethodAlone(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		method string
	}{
		{
			name:   "Analytics span",
			body:   `<a href="/user/status/1/analytics"><div><span class="css-1jxf684 r-bcqeeo">4,821</span></div></a>`,
			want:   "4,821",
			method: "analytics-span",
		},
		{
			name:   "Analytics aria-label",
			body:   `<a href="/user/status/1/analytics" aria-label="5,678 views. View post analytics"><div></div></a>`,
			want:   "5,678",
			method: "analytics-aria",
		},
		{
			name:   "Any aria-label",
			body:   `<div role="group" aria-label="3 replies, 10 likes, 1.2K views"></div>`,
			want:   "1.2K",
			method: "aria-any",
		},
		{
			name:   "Analytics text",
			body:   `<a href="/user/status/1/analytics"><b>  987 </b></a>`,
			want:   "987",
			method: "analytics-text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := extract.Run(context.Background(), snapshot(t, tt.body), extract.DefaultChain())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.method, res.Method)
		})
	}
}

func TestRun_ShortCircuit(t *testing.T) {
	//method 1 must win over a method 2 value on the same page
	doc := snapshot(t, `
		<a href="/user/status/1/analytics" aria-label="5,678 views. View post analytics">
			<span class="css-abc">1,234</span>
		</a>`)

	res, err := extract.Run(context.Background(), doc, extract.DefaultChain())
	require.NoError(t, err)
	assert.Equal(t, "1,234", res.Value)
	assert.Equal(t, "analytics-span", res.Method)
}

func TestRun_StopsAtFirstHit(t *testing.T) {
	var calls []string
	spy := func(name, value string, ok bool) extract.Strategy {
		return extract.Strategy{
			Name: name,
			Find: func(ctx context.Context, doc extract.Document) (string, bool) {
				calls = append(calls, name)
				return value, ok
			},
		}
	}

	chain := []extract.Strategy{
		spy("first", "", false),
		spy("second", "42", true),
		spy("third", "99", true),
	}

	res, err := extract.Run(context.Background(), snapshot(t, ""), chain)
	require.NoError(t, err)
	assert.Equal(t, "42", res.Value)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestRun_SkipsValuesWithoutDigits(t *testing.T) {
	doc := snapshot(t, `
		<a href="/user/status/1/analytics"><span class="css-abc">Views</span></a>
		<div aria-label="77 views"></div>`)

	res, err := extract.Run(context.Background(), doc, extract.DefaultChain())
	require.NoError(t, err)
	assert.Equal(t, "77", res.Value)
	assert.Equal(t, "aria-any", res.Method)
}

func TestRun_DOMOrder(t *testing.T) {
	doc := snapshot(t, `
		<div aria-label="earthquake views"></div>
		<div aria-label="10 views"></div>
		<div aria-label="20 views"></div>`)

	res, err := extract.Run(context.Background(), doc, extract.DefaultChain())
	require.NoError(t, err)
	assert.Equal(t, "10", res.Value)
}

func TestRun_NotFound(t *testing.T) {
	doc := snapshot(t, `<article><p>Sign in to X</p><a href="/home">Home</a></article>`)

	_, err := extract.Run(context.Background(), doc, extract.DefaultChain())
	assert.ErrorIs(t, err, extract.ErrNotFound)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extract.Run(ctx, snapshot(t, `<div aria-label="5 views"></div>`), extract.DefaultChain())
	assert.ErrorIs(t, err, context.Canceled)
}
