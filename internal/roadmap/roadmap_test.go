package roadmap_test

import (
	"testing"

	"github.com/ezerfernandes/codetabs/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	catalog, err := roadmap.Load()
	require.NoError(t, err)

	list := catalog.List()
	require.Len(t, list, 3)
	assert.Equal(t, "data-engineer", list[0].ID)
	assert.Equal(t, "devops", list[1].ID)
	assert.Equal(t, "web-development", list[2].ID)

	devops, err := catalog.Get("devops")
	require.NoError(t, err)
	require.Len(t, devops.Steps, 2)
	assert.Equal(t, []string{"Docker Desktop", "Podman", "Dive"}, devops.Steps[1].Toolset)
	assert.Equal(t, `"It works on my machine" is not a valid excuse anymore.`, devops.Steps[1].Description)
	assert.Equal(t, "Custom Load Balancer", devops.Steps[0].Projects.Advanced[0].Title)
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	catalog, err := roadmap.Load()
	require.NoError(t, err)

	_, err = catalog.Get("astronaut")
	require.ErrorIs(t, err, roadmap.ErrNotFound)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not a list":     "id: x",
		"missing id":     "- title: t\n  steps: [{id: a}]",
		"duplicate":      "- id: x\n  steps: [{id: a}]\n- id: x\n  steps: [{id: a}]",
		"no steps":       "- id: x",
		"duplicate step": "- id: x\n  steps: [{id: a}, {id: a}]",
	}

	for name, in := range tests {
		_, err := roadmap.Parse([]byte(in))
		assert.ErrorIs(t, err, roadmap.ErrInvalid, name)
	}
}
