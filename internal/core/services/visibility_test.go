package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

func TestCanViewDocument_SelectedUsers(t *testing.T) {
	doc := &domain.Document{
		ID: "D1", OwnerID: "u1", Visibility: domain.VisibilitySelectedUsers, SharedWith: []string{"u2"},
	}

	assert.True(t, CanViewDocument(u1, doc), "owner")
	assert.True(t, CanViewDocument(u2, doc), "shared with")
	assert.False(t, CanViewDocument(u3, doc), "not shared")
	assert.False(t, CanViewDocument(domain.Anonymous(), doc), "anonymous")
}

func TestCanViewDocument_Levels(t *testing.T) {
	viewers := map[string]domain.Viewer{
		"owner":     u1,
		"member":    u2,
		"anonymous": domain.Anonymous(),
		"unauthenticated with id": {ID: "u2", Authenticated: false},
		"authenticated without id": {Authenticated: true},
	}

	tests := []struct {
		visibility domain.Visibility
		want       map[string]bool
	}{
		{domain.VisibilityPrivate, map[string]bool{"owner": true}},
		{domain.VisibilitySelectedUsers, map[string]bool{"owner": true}},
		{domain.VisibilityMembers, map[string]bool{"owner": true, "member": true}},
		{domain.VisibilityPublic, map[string]bool{
			"owner": true, "member": true, "anonymous": true,
			"unauthenticated with id": true, "authenticated without id": true,
		}},
		{domain.VisibilityUnknown, map[string]bool{"owner": true}},
		{domain.Visibility("friends-only"), map[string]bool{"owner": true}},
	}

	for _, tt := range tests {
		doc := &domain.Document{ID: "D", OwnerID: "u1", Visibility: tt.visibility}
		for name, viewer := range viewers {
			t.Run(string(tt.visibility)+"/"+name, func(t *testing.T) {
				assert.Equal(t, tt.want[name], CanViewDocument(viewer, doc))
			})
		}
	}
}

func TestCanViewDocument_AnonymousNeverMatchesOwnership(t *testing.T) {
	doc := &domain.Document{ID: "D", OwnerID: "", Visibility: domain.VisibilityPrivate}

	assert.False(t, CanViewDocument(domain.Anonymous(), doc))
	assert.False(t, CanViewDocument(domain.Viewer{Authenticated: true}, doc))
}

func TestCanViewDocument_Nil(t *testing.T) {
	assert.False(t, CanViewDocument(u1, nil))
}

func TestCanViewDocument_PrivateHiddenFromEveryoneElse(t *testing.T) {
	doc := &domain.Document{ID: "D", OwnerID: "owner", Visibility: domain.VisibilityPrivate,
		SharedWith: []string{"u1", "u2"}}

	for _, viewer := range []domain.Viewer{u1, u2, u3, domain.Anonymous()} {
		assert.False(t, CanViewDocument(viewer, doc), viewer.ID)
	}
}

func TestCanViewDerived(t *testing.T) {
	lib := scenarioLibrary()

	r1, ok := lib.DerivedEntity(domain.KindDriver, "R1")
	assert.True(t, ok)
	assert.True(t, CanViewDerived(u1, r1, lib))
	assert.True(t, CanViewDerived(u2, r1, lib))
	assert.False(t, CanViewDerived(u3, r1, lib))

	r2, ok := lib.DerivedEntity(domain.KindDriver, "R2")
	assert.True(t, ok)
	for _, viewer := range []domain.Viewer{u1, u2, u3, domain.Anonymous()} {
		assert.False(t, CanViewDerived(viewer, r2, lib), "dangling lineage for %q", viewer.ID)
	}

	assert.False(t, CanViewDerived(u1, nil, lib))
	assert.False(t, CanViewDerived(u1, r1, nil))
}

func TestMatchesScope(t *testing.T) {
	doc := &domain.Document{ID: "D1", OwnerID: "u1", Visibility: domain.VisibilitySelectedUsers,
		SharedWith: []string{"u2"}}

	tests := []struct {
		name   string
		viewer domain.Viewer
		scope  domain.Scope
		want   bool
	}{
		{"all owner", u1, domain.ScopeAll, true},
		{"all other", u3, domain.ScopeAll, true},
		{"mine owner", u1, domain.ScopeMine, true},
		{"mine shared", u2, domain.ScopeMine, false},
		{"shared owner", u1, domain.ScopeSharedWithMe, false},
		{"shared recipient", u2, domain.ScopeSharedWithMe, true},
		{"shared stranger", u3, domain.ScopeSharedWithMe, false},
		{"unknown scope is all", u3, domain.Scope("team"), true},
		{"mine anonymous", domain.Anonymous(), domain.ScopeMine, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesScope(tt.viewer, doc, tt.scope))
		})
	}

	assert.False(t, MatchesScope(u1, nil, domain.ScopeAll))
}

func TestMatchesScope_SharedWithMeNeedsSelectedUsers(t *testing.T) {
	for _, vis := range []domain.Visibility{domain.VisibilityMembers, domain.VisibilityPublic} {
		t.Run(vis.String(), func(t *testing.T) {
			doc := &domain.Document{ID: "D9", OwnerID: "u1", Visibility: vis, SharedWith: []string{"u2"}}

			assert.True(t, CanViewDocument(u2, doc))
			assert.False(t, MatchesScope(u2, doc, domain.ScopeSharedWithMe))
		})
	}
}

func TestFilterLibrary_SharedWithMeIgnoresLeftoverShareList(t *testing.T) {
	raw := &domain.RawSnapshot{Documents: []domain.RawDocument{
		{ID: "D1", OwnerID: "u1", Visibility: "MEMBERS", SharedWith: []string{"u2"}},
		{ID: "D2", OwnerID: "u1", Visibility: "SELECTED_USERS", SharedWith: []string{"u2"}},
	}}

	got := FilterLibrary(AssembleLibrary(raw), u2, domain.LibraryFilter{Scope: domain.ScopeSharedWithMe})

	assert.Equal(t, []string{"D2"}, ids(got)[domain.KindDocument])
}

func TestCanViewDocument_UnauthenticatedIDIsAnonymous(t *testing.T) {
	viewer := domain.Viewer{ID: "u1", Authenticated: false}

	assert.False(t, CanViewDocument(viewer, &domain.Document{OwnerID: "u1", Visibility: domain.VisibilityPrivate}))
	assert.False(t, CanViewDocument(viewer, &domain.Document{OwnerID: "u9",
		Visibility: domain.VisibilitySelectedUsers, SharedWith: []string{"u1"}}))
	assert.True(t, CanViewDocument(viewer, &domain.Document{OwnerID: "u9", Visibility: domain.VisibilityPublic}))
}
