package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	listFunc         func(ctx context.Context, ownerID string) ([]models.Todo, error)
	createFunc       func(ctx context.Context, ownerID, text string) (models.Todo, error)
	setCompletedFunc func(ctx context.Context, id string, completed bool) (models.Todo, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (f *fakeClient) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	return f.listFunc(ctx, ownerID)
}

func (f *fakeClient) Create(ctx context.Context, ownerID, text string) (models.Todo, error) {
	return f.createFunc(ctx, ownerID, text)
}

func (f *fakeClient) SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error) {
	return f.setCompletedFunc(ctx, id, completed)
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	return f.deleteFunc(ctx, id)
}

func seeded(t *testing.T, client *fakeClient, items []models.Todo) *Controller {
	t.Helper()
	client.listFunc = func(ctx context.Context, ownerID string) ([]models.Todo, error) {
		return items, nil
	}
	ctrl := New(client)
	require.NoError(t, ctrl.Initialize(context.Background(), "u1"))
	return ctrl
}

func ids(items []models.Todo) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestInitialize_FailureLeavesListEmpty(t *testing.T) {
	client := &fakeClient{
		listFunc: func(ctx context.Context, ownerID string) ([]models.Todo, error) {
			return nil, fmt.Errorf("boom: %w", common.ErrorStore)
		},
	}
	ctrl := New(client)

	err := ctrl.Initialize(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.Empty(t, ctrl.Items())
}

func TestInitialize_ReplacesPreviousSession(t *testing.T) {
	client := &fakeClient{}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1", OwnerID: "u1"}})

	client.listFunc = func(ctx context.Context, ownerID string) ([]models.Todo, error) {
		assert.Equal(t, "u2", ownerID)
		return []models.Todo{{ID: "t9", OwnerID: "u2"}}, nil
	}

	require.NoError(t, ctrl.Initialize(context.Background(), "u2"))
	assert.Equal(t, []string{"t9"}, ids(ctrl.Items()))
}

func TestCreate_AppendsServerDocument(t *testing.T) {
	client := &fakeClient{
		createFunc: func(ctx context.Context, ownerID, text string) (models.Todo, error) {
			return models.Todo{ID: "t2", OwnerID: ownerID, Text: text}, nil
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}})

	require.NoError(t, ctrl.Create(context.Background(), "  buy milk  "))

	items := ctrl.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "t2", items[1].ID)
	assert.Equal(t, "buy milk", items[1].Text)
}

func TestCreate_BlankTextRejectedWithoutRequest(t *testing.T) {
	called := false
	client := &fakeClient{
		createFunc: func(ctx context.Context, ownerID, text string) (models.Todo, error) {
			called = true
			return models.Todo{}, nil
		},
	}
	ctrl := seeded(t, client, nil)

	err := ctrl.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.False(t, called)
	assert.Empty(t, ctrl.Items())
}

func TestCreate_FailureAddsNothing(t *testing.T) {
	client := &fakeClient{
		createFunc: func(ctx context.Context, ownerID, text string) (models.Todo, error) {
			return models.Todo{}, fmt.Errorf("down: %w", common.ErrorStore)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}})

	err := ctrl.Create(context.Background(), "buy milk")
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.Equal(t, []string{"t1"}, ids(ctrl.Items()))
}

func TestToggle_ReplacesWithServerCopy(t *testing.T) {
	client := &fakeClient{
		setCompletedFunc: func(ctx context.Context, id string, completed bool) (models.Todo, error) {
			assert.True(t, completed)
			return models.Todo{ID: id, Text: "buy milk", Completed: completed}, nil
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1", Text: "buy milk"}})

	require.NoError(t, ctrl.ToggleCompletion(context.Background(), "t1"))
	assert.True(t, ctrl.Items()[0].Completed)
}

func TestToggle_FailureRevertsFlip(t *testing.T) {
	client := &fakeClient{
		setCompletedFunc: func(ctx context.Context, id string, completed bool) (models.Todo, error) {
			return models.Todo{}, fmt.Errorf("down: %w", common.ErrorStore)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1", Completed: true}})

	err := ctrl.ToggleCompletion(context.Background(), "t1")
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.True(t, ctrl.Items()[0].Completed)
}

func TestToggle_NotFoundPrunesItem(t *testing.T) {
	client := &fakeClient{
		setCompletedFunc: func(ctx context.Context, id string, completed bool) (models.Todo, error) {
			return models.Todo{}, fmt.Errorf("gone: %w", common.ErrorNotFound)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}, {ID: "t2"}})

	err := ctrl.ToggleCompletion(context.Background(), "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, []string{"t2"}, ids(ctrl.Items()))
}

func TestToggle_UnknownLocalID(t *testing.T) {
	ctrl := seeded(t, &fakeClient{}, []models.Todo{{ID: "t1"}})

	err := ctrl.ToggleCompletion(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestToggle_TwoFailuresRestoreOriginalState(t *testing.T) {
	client := &fakeClient{
		setCompletedFunc: func(ctx context.Context, id string, completed bool) (models.Todo, error) {
			return models.Todo{}, fmt.Errorf("down: %w", common.ErrorStore)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1", Completed: false}})

	_ = ctrl.ToggleCompletion(context.Background(), "t1")
	_ = ctrl.ToggleCompletion(context.Background(), "t1")
	assert.False(t, ctrl.Items()[0].Completed)
}

func TestDelete_RemovesItem(t *testing.T) {
	client := &fakeClient{
		deleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}, {ID: "t2"}})

	require.NoError(t, ctrl.Delete(context.Background(), "t1"))
	assert.Equal(t, []string{"t2"}, ids(ctrl.Items()))
}

func TestDelete_FailureRestoresAtOriginalIndex(t *testing.T) {
	client := &fakeClient{
		deleteFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("down: %w", common.ErrorStore)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}})

	err := ctrl.Delete(context.Background(), "t2")
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(ctrl.Items()))
}

func TestDelete_NotFoundKeepsRemoval(t *testing.T) {
	client := &fakeClient{
		deleteFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("gone: %w", common.ErrorNotFound)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}, {ID: "t2"}})

	err := ctrl.Delete(context.Background(), "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, []string{"t2"}, ids(ctrl.Items()))
}

func TestRefresh_ReplacesList(t *testing.T) {
	client := &fakeClient{}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}})

	client.listFunc = func(ctx context.Context, ownerID string) ([]models.Todo, error) {
		return []models.Todo{{ID: "t1"}, {ID: "t2"}}, nil
	}

	require.NoError(t, ctrl.Refresh(context.Background()))
	assert.Equal(t, []string{"t1", "t2"}, ids(ctrl.Items()))
}

func TestRefresh_FailureKeepsCurrentList(t *testing.T) {
	client := &fakeClient{}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}})

	client.listFunc = func(ctx context.Context, ownerID string) ([]models.Todo, error) {
		return nil, errors.New("down")
	}

	require.Error(t, ctrl.Refresh(context.Background()))
	assert.Equal(t, []string{"t1"}, ids(ctrl.Items()))
}

func TestOverlappingIntents_SecondProceedsWhileFirstInFlight(t *testing.T) {
	deleteStarted := make(chan struct{})
	releaseDelete := make(chan struct{})
	client := &fakeClient{
		deleteFunc: func(ctx context.Context, id string) error {
			close(deleteStarted)
			<-releaseDelete
			return nil
		},
		setCompletedFunc: func(ctx context.Context, id string, completed bool) (models.Todo, error) {
			return models.Todo{ID: id, Text: "walk dog", Completed: completed}, nil
		},
	}
	ctrl := seeded(t, client, []models.Todo{
		{ID: "t1", Text: "buy milk"},
		{ID: "t2", Text: "walk dog"},
	})

	deleteDone := make(chan error, 1)
	go func() { deleteDone <- ctrl.Delete(context.Background(), "t1") }()
	<-deleteStarted

	// the toggle must not wait for the outstanding delete
	require.NoError(t, ctrl.ToggleCompletion(context.Background(), "t2"))

	close(releaseDelete)
	require.NoError(t, <-deleteDone)

	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "t2", items[0].ID)
	assert.True(t, items[0].Completed)
}

func TestToggleRollback_SkipsItemDeletedMeanwhile(t *testing.T) {
	toggleStarted := make(chan struct{})
	releaseToggle := make(chan struct{})
	client := &fakeClient{
		setCompletedFunc: func(ctx context.Context, id string, completed bool) (models.Todo, error) {
			close(toggleStarted)
			<-releaseToggle
			return models.Todo{}, fmt.Errorf("down: %w", common.ErrorStore)
		},
		deleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1", Text: "buy milk"}})

	toggleDone := make(chan error, 1)
	go func() { toggleDone <- ctrl.ToggleCompletion(context.Background(), "t1") }()
	<-toggleStarted

	require.NoError(t, ctrl.Delete(context.Background(), "t1"))

	close(releaseToggle)
	assert.ErrorIs(t, <-toggleDone, common.ErrorStore)

	// the failed toggle must not bring the deleted item back
	assert.Empty(t, ctrl.Items())
}

func TestDeleteRollback_SkipsReinsertAfterRefreshRemovedItem(t *testing.T) {
	deleteStarted := make(chan struct{})
	releaseDelete := make(chan struct{})
	client := &fakeClient{
		deleteFunc: func(ctx context.Context, id string) error {
			close(deleteStarted)
			<-releaseDelete
			return fmt.Errorf("down: %w", common.ErrorStore)
		},
	}
	ctrl := seeded(t, client, []models.Todo{{ID: "t1"}, {ID: "t2"}})

	deleteDone := make(chan error, 1)
	go func() { deleteDone <- ctrl.Delete(context.Background(), "t1") }()
	<-deleteStarted

	// a concurrent refresh brings t1 back: the server still has it while
	// the delete is in flight
	client.listFunc = func(ctx context.Context, ownerID string) ([]models.Todo, error) {
		return []models.Todo{{ID: "t1"}, {ID: "t2"}}, nil
	}
	require.NoError(t, ctrl.Refresh(context.Background()))

	close(releaseDelete)
	assert.ErrorIs(t, <-deleteDone, common.ErrorStore)

	// the refresh already restored t1 from the server; the rollback must
	// not add a second copy
	assert.Equal(t, []string{"t1", "t2"}, ids(ctrl.Items()))
}

func TestSignOut_DropsItems(t *testing.T) {
	ctrl := seeded(t, &fakeClient{}, []models.Todo{{ID: "t1"}})

	ctrl.SignOut()
	assert.Empty(t, ctrl.Items())
}

func TestItems_ReturnsIndependentSnapshot(t *testing.T) {
	ctrl := seeded(t, &fakeClient{}, []models.Todo{{ID: "t1", Text: "a"}})

	snapshot := ctrl.Items()
	snapshot[0].Text = "mutated"

	assert.Equal(t, "a", ctrl.Items()[0].Text)
}
