package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockStore struct {
	queries map[primitive.ObjectID]*GeneralQuery
}

func newMockStore() *mockStore {
	return &mockStore{
		queries: make(map[primitive.ObjectID]*GeneralQuery),
	}
}

func (m *mockStore) createOne(_ context.Context, generalQuery *GeneralQuery) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	generalQuery.QueryID = id
	m.queries[id] = generalQuery

	return id, nil
}

func (m *mockStore) findAll(_ context.Context) ([]*GeneralQuery, error) {
	var all []*GeneralQuery
	for _, q := range m.queries {
		all = append(all, q)
	}

	return all, nil
}

func (m *mockStore) updateOne(_ context.Context, queryID primitive.ObjectID, set bson.M) (*GeneralQuery, error) {
	q, ok := m.queries[queryID]
	if !ok {
		return nil, servererrors.ErrQueryNotFound
	}

	if response, ok := set["response"]; ok {
		q.Response = response.(string)
	}
	if status, ok := set["status"]; ok {
		q.Status = status.(Status)
	}

	return q, nil
}

func TestCreateGeneralQuery_StartsUnread(t *testing.T) {
	svc := NewService(newMockStore())

	generalQuery, err := svc.createGeneralQuery(context.Background(), &CreateGeneralQueryRequest{
		ClientName:  "Kwame Boateng",
		ClientEmail: "kwame@example.com",
		Message:     "Do you take bridal commissions?",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusUnread, generalQuery.Status)
}

func TestUpdateGeneralQuery_ResponseAndStatus(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	created, err := svc.createGeneralQuery(context.Background(), &CreateGeneralQueryRequest{
		ClientName:  "Kwame Boateng",
		ClientEmail: "kwame@example.com",
		Message:     "Do you take bridal commissions?",
	})
	require.NoError(t, err)

	updated, err := svc.updateGeneralQuery(context.Background(), &UpdateGeneralQueryRequest{
		QueryID:  created.QueryID.Hex(),
		Response: "We do, lead time is eight weeks.",
		Status:   string(StatusResolved),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, updated.Status)
	assert.Equal(t, "We do, lead time is eight weeks.", updated.Response)
}

func TestUpdateGeneralQuery_UnknownStatusRejected(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	created, err := svc.createGeneralQuery(context.Background(), &CreateGeneralQueryRequest{
		ClientName:  "Kwame Boateng",
		ClientEmail: "kwame@example.com",
		Message:     "Do you take bridal commissions?",
	})
	require.NoError(t, err)

	_, err = svc.updateGeneralQuery(context.Background(), &UpdateGeneralQueryRequest{
		QueryID: created.QueryID.Hex(),
		Status:  "Archived",
	})
	assert.ErrorIs(t, err, servererrors.ErrValidationFailed)
	assert.Equal(t, StatusUnread, created.Status)
}

func TestUpdateGeneralQuery_UnknownIDFails(t *testing.T) {
	svc := NewService(newMockStore())

	_, err := svc.updateGeneralQuery(context.Background(), &UpdateGeneralQueryRequest{
		QueryID: primitive.NewObjectID().Hex(),
		Status:  string(StatusInProgress),
	})
	assert.ErrorIs(t, err, servererrors.ErrQueryNotFound)
}
