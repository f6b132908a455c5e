package projects

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidkik/editsync/pkg/config"
)

func TestListProjects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div class="project-title">space-game</div>`+
			`<div class="project-title">tetris</div>`)
	}))
	defer ts.Close()

	out := &bytes.Buffer{}
	stdout = out
	parseUserConfig = func() (config.User, error) {
		return config.User{URL: ts.URL}, nil
	}

	assert.NoError(t, run(""))
	assert.Equal(t, "space-game\ntetris\n", out.String())
}

func TestListProjectsRequiresURL(t *testing.T) {
	parseUserConfig = func() (config.User, error) {
		return config.User{}, nil
	}
	assert.Error(t, run(""))
}
