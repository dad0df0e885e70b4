package access

import (
	"context"
	"testing"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverOwner(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	course := testutil.CreateCourse(t, db, alice.ID, "Databases")
	module := testutil.CreateModule(t, db, course.ID, "Indexes", models.StatusPlanned)
	card := testutil.CreateFlashcard(t, db, module.ID, "What is a B-tree?")

	r := NewResolver(db)

	for _, tc := range []struct {
		kind Kind
		id   string
	}{
		{KindCourse, course.ID},
		{KindModule, module.ID},
		{KindFlashcard, card.ID},
	} {
		owner, err := r.Owner(ctx, tc.kind, tc.id)
		require.NoError(t, err, tc.kind)
		assert.Equal(t, alice.ID, owner, tc.kind)
	}

	_, err := r.Owner(ctx, KindModule, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Owner(ctx, KindFlashcard, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolverAuthorize(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	course := testutil.CreateCourse(t, db, alice.ID, "Databases")
	module := testutil.CreateModule(t, db, course.ID, "Indexes", models.StatusPlanned)

	r := NewResolver(db)

	assert.NoError(t, r.Authorize(ctx, KindModule, module.ID, alice.ID))
	assert.ErrorIs(t, r.Authorize(ctx, KindModule, module.ID, bob.ID), ErrForbidden)
	assert.ErrorIs(t, r.Authorize(ctx, KindCourse, "nope", alice.ID), ErrNotFound)

	// Creating under a missing or foreign parent looks the same.
	assert.ErrorIs(t, r.AuthorizeParent(ctx, KindCourse, "nope", alice.ID), ErrForbidden)
	assert.ErrorIs(t, r.AuthorizeParent(ctx, KindCourse, course.ID, bob.ID), ErrForbidden)
	assert.NoError(t, r.AuthorizeParent(ctx, KindCourse, course.ID, alice.ID))
}
