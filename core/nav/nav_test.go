package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/", PathFor("home"))
	assert.Equal(t, "/news", PathFor("news"))
	assert.Equal(t, "/dashboard", PathFor("dashboard"))
}

func TestNavigatorStartsOnHome(t *testing.T) {
	n := New(nil)
	assert.Equal(t, "home", n.Current().Page)
	assert.Equal(t, "/", n.Current().Path)
	assert.Empty(t, n.History())
}

func TestNavigatorPushesHistory(t *testing.T) {
	var seen []string
	n := New(func(e Entry) { seen = append(seen, e.Path) })

	n.Navigate("news", map[string]string{"articleId": "42"})
	n.Navigate("dashboard", nil)

	assert.Equal(t, "dashboard", n.Current().Page)
	history := n.History()
	if assert.Len(t, history, 2) {
		assert.Equal(t, "/news", history[0].Path)
		// payload rides along in memory only; it is never in the path
		assert.Equal(t, map[string]string{"articleId": "42"}, history[0].Payload)
		assert.Equal(t, "/dashboard", history[1].Path)
	}
	assert.Equal(t, []string{"/news", "/dashboard"}, seen)
}
