package store_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/opsdash/internal/form"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// frozen returns a clock stuck at epoch.
func frozen() func() time.Time {
	return func() time.Time { return epoch }
}

func seed() store.Seed {
	return store.Seed{
		Records: []store.Employee{
			{ID: "1", FirstName: "Alice", LastName: "Johnson", Email: "alice@company.com", Department: "Engineering", Salary: 95000, StartDate: "2023-01-15"},
			{ID: "2", FirstName: "Bob", LastName: "Smith", Email: "bob@company.com", Department: "Marketing", Salary: 72000, StartDate: "2023-03-20"},
		},
		Tasks: []store.Task{
			{ID: "1", Name: "Plan", StartDate: "2024-01-15", EndDate: "2024-01-30", Progress: 0, Assignee: "Alice", Priority: "High", Status: store.StatusNotStarted, Dependencies: []string{}},
		},
		Kanban: []store.KanbanColumn{
			{ID: "todo", Title: "To Do", Cards: []store.KanbanCard{
				{ID: "card-1", Title: "One", Priority: "High", Tags: []string{"a"}},
				{ID: "card-2", Title: "Two", Priority: "Low", Tags: []string{}},
			}},
			{ID: "done", Title: "Done", Cards: []store.KanbanCard{
				{ID: "card-3", Title: "Three", Priority: "Medium", Tags: []string{}},
			}},
		},
		Forms: []store.DynamicForm{
			{ID: "1", Title: "Feedback", Fields: []form.Field{{ID: "name", Type: form.KindText, Label: "Name", Required: true}}, Submissions: []form.Submission{}},
		},
		Emails: []store.Email{
			{ID: "1", From: "john@company.com", Subject: "Q4 Planning", Body: "<p>update</p>", Timestamp: epoch.Add(-2 * time.Hour), IsStarred: true, Folder: store.FolderInbox},
			{ID: "2", From: "sarah@company.com", Subject: "Design review", Body: "<p>reminder</p>", Timestamp: epoch.Add(-time.Hour), IsRead: true, IsImportant: true, Folder: store.FolderInbox},
			{ID: "3", From: "me@company.com", Subject: "Weekly update", Body: "<p>planning done</p>", Timestamp: epoch.Add(-3 * time.Hour), IsRead: true, Folder: store.FolderSent},
		},
		Chat: store.ChatSeed{
			CurrentUser: store.Participant{ID: "current-user", Name: "You", IsOnline: true},
			Conversations: []store.Conversation{
				{ID: "conv-1", Name: "Alice", Type: store.ConversationDirect, UnreadCount: 2, IsOnline: true, Participants: []store.Participant{
					{ID: "current-user", Name: "You", IsOnline: true},
					{ID: "alice", Name: "Alice", IsOnline: true},
				}},
				{ID: "conv-2", Name: "Team", Type: store.ConversationGroup, Participants: []store.Participant{
					{ID: "current-user", Name: "You", IsOnline: true},
					{ID: "alice", Name: "Alice", IsOnline: true},
					{ID: "bob", Name: "Bob"},
				}},
			},
			Messages: map[string][]store.Message{
				"conv-1": {
					{ID: "msg-1", SenderID: "alice", Content: "hey", Type: "text"},
					{ID: "msg-2", SenderID: "current-user", Content: "hi", Type: "text", IsRead: true},
					{ID: "msg-3", SenderID: "alice", Content: "ping", Type: "text"},
				},
			},
		},
		Org: store.OrgSeed{
			Teams: []store.TeamNode{{ID: "ceo-1", Name: "John", Role: "CEO", Department: "Executive"}},
		},
	}
}

func TestNew_SetsLastMessage(t *testing.T) {
	s := store.New(seed())
	convs := s.Conversations()
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "msg-3", convs[0].LastMessage.ID)
	assert.Nil(t, convs[1].LastMessage)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := store.New(seed())
	cols := s.Columns()
	cols[0].Cards[0].Tags[0] = "mutated"
	cols[0].Cards = nil
	fresh := s.Columns()
	assert.Equal(t, "a", fresh[0].Cards[0].Tags[0])
	assert.Len(t, fresh[0].Cards, 2)
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := store.New(seed()), store.New(seed())
	a.DeleteRecord("1")
	assert.Len(t, a.Records(), 1)
	assert.Len(t, b.Records(), 2)
}

func TestIDs_StrictlyIncreasing(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))
	first := s.AddRecord(store.Employee{FirstName: "x"})
	second := s.AddRecord(store.Employee{FirstName: "y"})
	card, ok := s.AddCard("todo", store.KanbanCard{Title: "z"})
	require.True(t, ok)

	assert.Equal(t, "1709294400000", first)
	assert.Equal(t, "1709294400001", second)
	assert.Equal(t, "card-1709294400002", card)
}

func TestRecords_AddUpdateDeleteRestores(t *testing.T) {
	s := store.New(seed())
	before := s.Records()

	id := s.AddRecord(store.Employee{FirstName: "Carol", LastName: "Davis", Email: "carol@company.com", Department: "Sales", StartDate: "2023-02-10"})
	got, ok := s.Record(id)
	require.True(t, ok)
	got.Salary = 68000
	require.True(t, s.UpdateRecord(got))
	updated, _ := s.Record(id)
	assert.Equal(t, 68000.0, updated.Salary)
	require.True(t, s.DeleteRecord(id))

	if diff := cmp.Diff(before, s.Records()); diff != "" {
		t.Errorf("records not restored (-before +after):\n%s", diff)
	}
}

func TestRecords_UpdateMissingIsNoop(t *testing.T) {
	s := store.New(seed())
	assert.False(t, s.UpdateRecord(store.Employee{ID: "404", FirstName: "ghost"}))
	assert.False(t, s.DeleteRecord("404"))
	assert.Len(t, s.Records(), 2)
}

func TestTasks_AddUpdateDeleteRestores(t *testing.T) {
	s := store.New(seed())
	before := s.Tasks()
	id := s.AddTask(store.Task{Name: "Build", StartDate: "2024-02-01", EndDate: "2024-02-10", Priority: "Low", Status: store.StatusNotStarted})
	require.True(t, s.UpdateTask(store.Task{ID: id, Name: "Build v2", StartDate: "2024-02-01", EndDate: "2024-02-11", Priority: "Low", Status: store.StatusOnHold}))
	require.True(t, s.DeleteTask(id))
	if diff := cmp.Diff(before, s.Tasks()); diff != "" {
		t.Errorf("tasks not restored (-before +after):\n%s", diff)
	}
}

func TestUpdateTaskProgress(t *testing.T) {
	tests := []struct {
		progress int
		want     string
	}{
		{0, store.StatusNotStarted},
		{40, store.StatusInProgress},
		{100, store.StatusCompleted},
	}
	for _, tt := range tests {
		s := store.New(seed())
		require.True(t, s.UpdateTaskProgress("1", tt.progress))
		task := s.Tasks()[0]
		assert.Equal(t, tt.progress, task.Progress)
		assert.Equal(t, tt.want, task.Status, "progress %d", tt.progress)
	}
	assert.False(t, store.New(seed()).UpdateTaskProgress("404", 10))
}

func cardIDs(col store.KanbanColumn) []string {
	ids := []string{}
	for _, c := range col.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestMoveCard(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))

	require.True(t, s.MoveCard(store.CardMove{CardID: "card-1", SourceColumnID: "todo", DestinationColumnID: "done", SourceIndex: 0, DestinationIndex: 99}))
	todo, _ := s.Column("todo")
	done, _ := s.Column("done")
	assert.Equal(t, []string{"card-2"}, cardIDs(todo))
	assert.Equal(t, []string{"card-3", "card-1"}, cardIDs(done))
	assert.Equal(t, epoch, done.Cards[1].UpdatedAt)

	// Reorder within one column.
	require.True(t, s.MoveCard(store.CardMove{CardID: "card-1", SourceColumnID: "done", DestinationColumnID: "done", SourceIndex: 1, DestinationIndex: 0}))
	done, _ = s.Column("done")
	assert.Equal(t, []string{"card-1", "card-3"}, cardIDs(done))

	// Stale source index falls back to the card id.
	require.True(t, s.MoveCard(store.CardMove{CardID: "card-3", SourceColumnID: "done", DestinationColumnID: "todo", SourceIndex: 0, DestinationIndex: 0}))
	todo, _ = s.Column("todo")
	assert.Equal(t, []string{"card-3", "card-2"}, cardIDs(todo))

	assert.False(t, s.MoveCard(store.CardMove{SourceColumnID: "nope", DestinationColumnID: "todo"}))
	assert.False(t, s.MoveCard(store.CardMove{SourceColumnID: "todo", DestinationColumnID: "done", SourceIndex: 7}))
}

func TestCards_AddPatchDelete(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))
	before := s.Columns()

	id, ok := s.AddCard("todo", store.KanbanCard{Title: "New", Priority: "Low"})
	require.True(t, ok)
	card, ok := s.Card("todo", id)
	require.True(t, ok)
	assert.Equal(t, epoch, card.CreatedAt)
	assert.Equal(t, []string{}, card.Tags)

	patched, err := store.PatchCard(card, []byte(`{"title":"Renamed","id":"hijack","tags":["x"],"assignee":null}`))
	require.NoError(t, err)
	assert.Equal(t, id, patched.ID)
	assert.Equal(t, "Renamed", patched.Title)
	assert.Equal(t, []string{"x"}, patched.Tags)
	require.True(t, s.UpdateCard("todo", patched))

	require.True(t, s.DeleteCard("todo", id))
	if diff := cmp.Diff(before, s.Columns()); diff != "" {
		t.Errorf("board not restored (-before +after):\n%s", diff)
	}

	_, ok = s.AddCard("missing", store.KanbanCard{Title: "x"})
	assert.False(t, ok)
	_, err = store.PatchCard(card, []byte(`{not json`))
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	s := store.New(seed())
	s.AddColumn(store.KanbanColumn{ID: "review", Title: "Review", Cards: []store.KanbanCard{{ID: "smuggled"}}})
	col, ok := s.Column("review")
	require.True(t, ok)
	assert.Empty(t, col.Cards)

	todo, _ := s.Column("todo")
	patched, err := store.PatchColumn(todo, []byte(`{"title":"Next","cards":[],"limit":3}`))
	require.NoError(t, err)
	require.True(t, s.UpdateColumn(patched))
	todo, _ = s.Column("todo")
	assert.Equal(t, "Next", todo.Title)
	assert.Len(t, todo.Cards, 2)
	require.NotNil(t, todo.Limit)
	assert.Equal(t, 3, *todo.Limit)

	require.True(t, s.DeleteColumn("review"))
	assert.Len(t, s.Columns(), 2)
}

func TestForms_Lifecycle(t *testing.T) {
	now := epoch
	s := store.New(seed(), store.WithClock(func() time.Time { return now }))

	id := s.CreateForm(store.DynamicForm{Title: "Survey", Fields: []form.Field{{ID: "q", Type: form.KindText, Label: "Q"}}, Submissions: []form.Submission{{ID: "junk"}}})
	f, ok := s.Form(id)
	require.True(t, ok)
	assert.Empty(t, f.Submissions)
	assert.Equal(t, epoch, f.CreatedAt)

	subID, ok := s.SubmitForm(id, map[string]form.Value{"q": form.Text("yes")})
	require.True(t, ok)

	now = epoch.Add(time.Minute)
	f.Title = "Survey v2"
	f.Submissions = nil
	require.True(t, s.UpdateForm(f))
	f, _ = s.Form(id)
	assert.Equal(t, "Survey v2", f.Title)
	assert.Equal(t, epoch, f.CreatedAt)
	assert.Equal(t, now, f.UpdatedAt)
	require.Len(t, f.Submissions, 1)
	assert.Equal(t, subID, f.Submissions[0].ID)
	assert.Equal(t, id, f.Submissions[0].FormID)

	require.True(t, s.DeleteForm(id))
	_, ok = s.SubmitForm(id, nil)
	assert.False(t, ok)
	assert.Len(t, s.Forms(), 1)
}

func emailIDs(es []store.Email) []string {
	ids := []string{}
	for _, e := range es {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestEmails_FoldersAndSearch(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))

	assert.Equal(t, []string{"2", "1"}, emailIDs(s.Emails(store.FolderInbox, "")))
	assert.Equal(t, []string{"1"}, emailIDs(s.Emails(store.FolderStarred, "")))
	assert.Equal(t, []string{"1", "3"}, emailIDs(s.Emails("", "PLANNING")))
	assert.Equal(t, []string{"2"}, emailIDs(s.Emails(store.FolderInbox, "sarah")))

	require.True(t, s.DeleteEmail("1"))
	assert.Empty(t, s.Emails(store.FolderStarred, ""))
	assert.Equal(t, []string{"1"}, emailIDs(s.Emails(store.FolderTrash, "")))
	e, ok := s.Email("1")
	require.True(t, ok)
	assert.True(t, e.IsStarred)

	require.True(t, s.ToggleImportant("2"))
	assert.Empty(t, s.Emails(store.FolderImportant, ""))
	require.True(t, s.ToggleStar("2"))
	require.True(t, s.MarkEmailRead("2", false))
	assert.False(t, s.MarkEmailRead("404", true))

	counts := map[string]store.FolderCount{}
	for _, c := range s.FolderCounts() {
		counts[c.Folder] = c
	}
	assert.Equal(t, store.FolderCount{Folder: store.FolderInbox, Total: 1, Unread: 1}, counts[store.FolderInbox])
	assert.Equal(t, 1, counts[store.FolderStarred].Total)
	assert.Equal(t, 1, counts[store.FolderTrash].Total)
}

func TestSendEmail(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))
	id := s.SendEmail(store.Draft{To: "team@company.com", Subject: "Hi", Body: "<p>x</p>"})
	sent := s.Emails(store.FolderSent, "")
	require.Equal(t, id, sent[0].ID)
	assert.Equal(t, store.DefaultSender, sent[0].From)
	assert.Equal(t, epoch, sent[0].Timestamp)
	assert.True(t, sent[0].IsRead)
}

func TestChat_OpenConversation(t *testing.T) {
	s := store.New(seed())
	require.True(t, s.OpenConversation("conv-1"))
	assert.Equal(t, "conv-1", s.ActiveConversation())
	for _, m := range s.Messages("conv-1") {
		assert.True(t, m.IsRead, m.ID)
	}
	conv := s.Conversations()[0]
	assert.Zero(t, conv.UnreadCount)
	assert.True(t, conv.LastMessage.IsRead)

	assert.False(t, s.OpenConversation("conv-2"))
	assert.Equal(t, "conv-2", s.ActiveConversation())
}

func TestChat_SendAndReact(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))
	id := s.SendMessage("conv-2", "hello team")
	assert.Equal(t, "msg-1709294400000", id)
	msgs := s.Messages("conv-2")
	require.Len(t, msgs, 1)
	assert.Equal(t, "current-user", msgs[0].SenderID)
	assert.Equal(t, id, s.Conversations()[1].LastMessage.ID)

	rid, ok := s.ToggleReaction("conv-2", id, "👍")
	require.True(t, ok)
	assert.Equal(t, "reaction-1709294400001", rid)
	assert.Len(t, s.Messages("conv-2")[0].Reactions, 1)
	assert.Len(t, s.Conversations()[1].LastMessage.Reactions, 1)

	rid, ok = s.ToggleReaction("conv-2", id, "👍")
	require.True(t, ok)
	assert.Empty(t, rid)
	assert.Empty(t, s.Messages("conv-2")[0].Reactions)

	_, ok = s.ToggleReaction("conv-2", "msg-404", "👍")
	assert.False(t, ok)
	assert.True(t, s.MarkMessageRead("conv-1", "msg-1"))
	assert.False(t, s.MarkMessageRead("conv-1", "msg-404"))
}

func TestChat_Presence(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))
	require.True(t, s.SetPresence("alice", false))

	convs := s.Conversations()
	assert.False(t, convs[0].IsOnline, "direct conversation mirrors presence")
	assert.False(t, convs[1].IsOnline, "group conversation flag untouched")
	for _, c := range convs {
		p := c.Participants[1]
		assert.False(t, p.IsOnline)
		require.NotNil(t, p.LastSeen)
		assert.Equal(t, epoch, *p.LastSeen)
	}

	require.True(t, s.SetPresence("alice", true))
	assert.True(t, s.Conversations()[0].IsOnline)
	assert.False(t, s.SetPresence("nobody", true))
}

func TestOrg(t *testing.T) {
	s := store.New(seed(), store.WithClock(frozen()))
	id := s.AddTeamMember(store.TeamNode{Name: "Sarah", Role: "CTO", ManagerID: "ceo-1"})
	assert.Equal(t, "team-1709294400000", id)
	assert.Len(t, s.Teams(), 2)
	assert.Equal(t, "job-1709294400001", s.AddJob(store.JobNode{Title: "CEO"}))
	assert.Equal(t, "form-1709294400002", s.AddFormNode(store.FormNode{Title: "HR", Category: "Category"}))

	s.SetTeams(nil)
	assert.Empty(t, s.Teams())
	s.SetJobs([]store.JobNode{{ID: "j"}})
	assert.Len(t, s.Jobs(), 1)
	s.SetFormNodes([]store.FormNode{{ID: "f"}, {ID: "g", ParentFormID: "f"}})
	assert.Equal(t, "f", s.FormNodes()[1].ParentNodeID())
}
