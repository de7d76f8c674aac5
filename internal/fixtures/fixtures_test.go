package fixtures_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/opsdash/internal/fixtures"
	"github.com/gyaneshwarpardhi/opsdash/internal/form"
	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

func TestDefault(t *testing.T) {
	seed, err := fixtures.Default()
	require.NoError(t, err)

	assert.Len(t, seed.Records, 5)
	assert.Len(t, seed.Tasks, 8)
	require.Len(t, seed.Kanban, 5)
	cards := 0
	for _, c := range seed.Kanban {
		cards += len(c.Cards)
	}
	assert.Equal(t, 10, cards)
	assert.Len(t, seed.Forms, 2)
	assert.Len(t, seed.Emails, 5)
	assert.Len(t, seed.Chat.Conversations, 4)
	assert.Len(t, seed.Org.Teams, 8)
	assert.Len(t, seed.Org.Jobs, 8)
	assert.Len(t, seed.Org.Forms, 10)

	assert.Equal(t, "2023-01-15", seed.Records[0].StartDate)
	assert.Equal(t, time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC), seed.Kanban[0].Cards[0].CreatedAt.UTC())
	assert.Equal(t, form.Text("Yes"), seed.Forms[0].Submissions[0].Data["recommend"])
	assert.Equal(t, "current-user", seed.Chat.Conversations[0].Participants[0].ID)
	assert.Equal(t, []string{"3", "4"}, seed.Tasks[5].Dependencies)

	require.NoError(t, fixtures.Validate(seed, hierarchy.TreatAsRoot))
	require.NoError(t, fixtures.Validate(seed, hierarchy.RejectDangling))
}

func TestDefault_SeedsLastMessages(t *testing.T) {
	seed, err := fixtures.Default()
	require.NoError(t, err)
	s := store.New(seed)
	want := map[string]string{"conv-1": "msg-3", "conv-2": "msg-6", "conv-3": "msg-8", "conv-4": "msg-10"}
	for _, c := range s.Conversations() {
		require.NotNil(t, c.LastMessage, c.ID)
		assert.Equal(t, want[c.ID], c.LastMessage.ID)
	}
}

func TestLoad(t *testing.T) {
	seed, err := fixtures.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, seed.Records)

	_, err = fixtures.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records: [{id: x, firstName: A}]\n"), 0o644))
	seed, err = fixtures.Load(path)
	require.NoError(t, err)
	require.Len(t, seed.Records, 1)
	assert.Empty(t, seed.Tasks)

	require.NoError(t, os.WriteFile(path, []byte("records: {"), 0o644))
	_, err = fixtures.Load(path)
	assert.Error(t, err)
}

func TestValidate_ReportsEverything(t *testing.T) {
	seed := store.Seed{
		Records: []store.Employee{{ID: "1", FirstName: "A", LastName: "B", Email: "bad", Department: "Engineering", StartDate: "2023-01-01"}},
		Tasks:   []store.Task{{ID: "t", Name: "x", StartDate: "2024-02-01", EndDate: "2024-01-01", Assignee: "a", Priority: "Low", Status: "Completed"}},
		Org: store.OrgSeed{Teams: []store.TeamNode{
			{ID: "a", ManagerID: "b"},
			{ID: "b", ManagerID: "a"},
		}},
	}
	err := fixtures.Validate(seed, hierarchy.TreatAsRoot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records[1]: validation failed: email: Please enter a valid email address")
	assert.Contains(t, err.Error(), "End date must be after start date")
	assert.Contains(t, err.Error(), "org.teams")
}

func TestValidate_OrgNodes(t *testing.T) {
	seed := store.Seed{Org: store.OrgSeed{
		Teams: []store.TeamNode{
			{ID: "a", Name: "A", Role: "CEO", Department: "Executive", Email: "a@x.io"},
			{ID: "b", Name: "B", Role: "VP", Department: "Executive", Email: "b@x.io", ManagerID: "ghost"},
		},
		Forms: []store.FormNode{{ID: "f", Title: "Exit survey", Category: "HR", Status: "retired"}},
	}}

	err := fixtures.Validate(seed, hierarchy.TreatAsRoot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org.forms[f]: validation failed: status: Status must be one of: active, draft, archived")
	assert.NotContains(t, err.Error(), "org.teams")

	err = fixtures.Validate(seed, hierarchy.RejectDangling)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `org.teams: dangling parent reference: node "b" references unknown parent "ghost"`)
}
