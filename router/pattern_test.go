package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePattern(t *testing.T) {
	t.Run("valid patterns", func(t *testing.T) {
		valid := []string{
			"/",
			"/books",
			"/books/{id}",
			"/books/{id?}",
			"/books/{id=recent}",
			"/static/{filepath...}",
			"/api/v1/{resource}/data",
		}
		for _, raw := range valid {
			_, err := compilePattern(raw)
			assert.NoError(t, err, "pattern %q", raw)
		}
	})

	t.Run("invalid patterns", func(t *testing.T) {
		invalid := []string{
			"/books/{id?}/reviews",   // optional not trailing
			"/files/{path...}/more",  // catch-all not trailing
			"/books/{}",              // unnamed parameter
			"/books/{?}",             // unnamed optional
			"/books/{...}",           // unnamed catch-all
			"/books/{id",             // unterminated
			"/bo{oks",                // brace inside literal
		}
		for _, raw := range invalid {
			_, err := compilePattern(raw)
			assert.Error(t, err, "pattern %q", raw)
		}
	})
}

func TestPatternMatch(t *testing.T) {
	emptyMap := map[string]string{}

	testCases := []struct {
		routePattern   string
		requestPath    string
		expectedParams map[string]string
		shouldMatch    bool
	}{
		// static routes
		{"/home", "/home", emptyMap, true},
		{"/about/team", "/about/team", emptyMap, true},
		{"/contact", "/contact-us", nil, false},
		{"/home", "/home/extra", nil, false},

		// parameterized routes
		{"/users/{id}", "/users/123", map[string]string{"id": "123"}, true},
		{"/users/{id}", "/users", nil, false},
		{"/posts/{year}/{month}", "/posts/2023/10", map[string]string{"year": "2023", "month": "10"}, true},
		{"/api/v1/{resource}/data", "/api/v1/users/data", map[string]string{"resource": "users"}, true},

		// optional trailing parameter
		{"/books/{id?}", "/books", emptyMap, true},
		{"/books/{id?}", "/books/7", map[string]string{"id": "7"}, true},
		{"/books/{id?}", "/books/7/reviews", nil, false},

		// optional with default
		{"/feed/{page=1}", "/feed", map[string]string{"page": "1"}, true},
		{"/feed/{page=1}", "/feed/3", map[string]string{"page": "3"}, true},

		// catch-all
		{"/static/{filepath...}", "/static/css/style.css", map[string]string{"filepath": "css/style.css"}, true},
		{"/static/{filepath...}", "/static", emptyMap, true},

		// edge cases
		{"/", "/", emptyMap, true},
		{"/trailing", "/trailing/", emptyMap, true},
		{"/double/slash", "/double//slash", emptyMap, true},
	}

	for _, tc := range testCases {
		t.Run(tc.routePattern+" vs "+tc.requestPath, func(t *testing.T) {
			p, err := compilePattern(tc.routePattern)
			require.NoError(t, err)

			params, ok := p.match(splitPath(tc.requestPath))
			if tc.shouldMatch {
				require.True(t, ok, "expected %q to match %q", tc.requestPath, tc.routePattern)
				assert.Equal(t, tc.expectedParams, params)
			} else {
				assert.False(t, ok, "expected %q not to match %q", tc.requestPath, tc.routePattern)
			}
		})
	}
}

func TestLiteralCount(t *testing.T) {
	cases := map[string]int{
		"/books/new":            2,
		"/books/{id}":           1,
		"/{a}/{b}":              0,
		"/static/{filepath...}": 1,
	}
	for raw, want := range cases {
		p, err := compilePattern(raw)
		require.NoError(t, err)
		assert.Equal(t, want, p.literals, "pattern %q", raw)
	}
}
