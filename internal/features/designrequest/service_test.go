package designrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yosilia/dm-touch-backend/internal/realtime"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockStore struct {
	requests map[primitive.ObjectID]*DesignRequest
}

func newMockStore(requests ...*DesignRequest) *mockStore {
	m := &mockStore{
		requests: make(map[primitive.ObjectID]*DesignRequest),
	}
	for _, r := range requests {
		m.requests[r.RequestID] = r
	}

	return m
}

func (m *mockStore) countByDate(_ context.Context, appointmentDate string) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.AppointmentDate == appointmentDate {
			count++
		}
	}

	return count, nil
}

func (m *mockStore) createOne(_ context.Context, request *DesignRequest) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	request.RequestID = id
	m.requests[id] = request

	return id, nil
}

func (m *mockStore) findAll(_ context.Context, filter listFilter) ([]*DesignRequest, error) {
	var all []*DesignRequest
	for _, r := range m.requests {
		if filter.date != "" && r.AppointmentDate != filter.date {
			continue
		}
		if filter.email != "" && r.ClientEmail != filter.email {
			continue
		}
		all = append(all, r)
	}

	return all, nil
}

func (m *mockStore) findByID(_ context.Context, requestID primitive.ObjectID) (*DesignRequest, error) {
	r, ok := m.requests[requestID]
	if !ok {
		return nil, servererrors.ErrRequestNotFound
	}

	return r, nil
}

func (m *mockStore) findInProgressBefore(_ context.Context, date string) ([]*DesignRequest, error) {
	var stale []*DesignRequest
	for _, r := range m.requests {
		if r.Status == StatusInProgress && r.AppointmentDate < date {
			stale = append(stale, r)
		}
	}

	return stale, nil
}

func (m *mockStore) updateOne(_ context.Context, requestID primitive.ObjectID, set bson.M) (*DesignRequest, error) {
	r, ok := m.requests[requestID]
	if !ok {
		return nil, servererrors.ErrRequestNotFound
	}

	if status, ok := set["status"]; ok {
		r.Status = status.(Status)
	}
	if measurements, ok := set["measurements"]; ok {
		r.Measurements = measurements.(map[string]string)
	}

	return r, nil
}

type mockPublisher struct {
	events []realtime.Event
}

func (m *mockPublisher) Publish(_ context.Context, channel, name string, payload any) error {
	m.events = append(m.events, realtime.Event{Channel: channel, Name: name, Payload: payload})
	return nil
}

func createRequest(date string) *CreateDesignRequestRequest {
	return &CreateDesignRequestRequest{
		ClientName:      "Efua Owusu",
		ClientEmail:     "efua@example.com",
		Phone:           "+447700900456",
		AppointmentDate: date,
		AppointmentTime: "14:00",
	}
}

func bookedRequest(date string, status Status) *DesignRequest {
	return &DesignRequest{
		RequestID:       primitive.NewObjectID(),
		ClientName:      "Efua Owusu",
		ClientEmail:     "efua@example.com",
		AppointmentDate: date,
		Status:          status,
	}
}

func TestCreateDesignRequest_StartsPending(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, &mockPublisher{}, 5)

	request, err := svc.createDesignRequest(context.Background(), createRequest("2026-09-15"))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, request.Status)
	assert.Len(t, store.requests, 1)
}

func TestCreateDesignRequest_FullDayRejectedWithoutRecord(t *testing.T) {
	store := newMockStore(
		bookedRequest("2026-09-15", StatusPending),
		bookedRequest("2026-09-15", StatusConfirmed),
	)
	svc := NewService(store, &mockPublisher{}, 2)

	_, err := svc.createDesignRequest(context.Background(), createRequest("2026-09-15"))
	assert.ErrorIs(t, err, servererrors.ErrDateFullyBooked)
	assert.Len(t, store.requests, 2)

	// a different day is still open
	_, err = svc.createDesignRequest(context.Background(), createRequest("2026-09-16"))
	require.NoError(t, err)
}

func TestUpdateDesignRequest_ValidTransitions(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusInProgress},
		{StatusPending, StatusDeclined},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			booked := bookedRequest("2026-09-15", tc.from)
			publisher := &mockPublisher{}
			svc := NewService(newMockStore(booked), publisher, 5)

			updated, err := svc.updateDesignRequest(context.Background(), &UpdateDesignRequestRequest{
				RequestID: booked.RequestID.Hex(),
				Status:    string(tc.to),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
			assert.Len(t, publisher.events, 1)
		})
	}
}

func TestUpdateDesignRequest_InvalidTransitionsRejected(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusDeclined},
		{StatusCompleted, StatusInProgress},
		{StatusDeclined, StatusPending},
		{StatusCancelled, StatusConfirmed},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			booked := bookedRequest("2026-09-15", tc.from)
			publisher := &mockPublisher{}
			svc := NewService(newMockStore(booked), publisher, 5)

			_, err := svc.updateDesignRequest(context.Background(), &UpdateDesignRequestRequest{
				RequestID: booked.RequestID.Hex(),
				Status:    string(tc.to),
			})
			assert.ErrorIs(t, err, servererrors.ErrInvalidStatusChange)
			assert.Equal(t, tc.from, booked.Status)
			assert.Empty(t, publisher.events)
		})
	}
}

func TestUpdateDesignRequest_MeasurementsOnly(t *testing.T) {
	booked := bookedRequest("2026-09-15", StatusConfirmed)
	publisher := &mockPublisher{}
	svc := NewService(newMockStore(booked), publisher, 5)

	updated, err := svc.updateDesignRequest(context.Background(), &UpdateDesignRequestRequest{
		RequestID:    booked.RequestID.Hex(),
		Measurements: map[string]string{"bust": "92cm", "waist": "74cm"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
	assert.Equal(t, "92cm", updated.Measurements["bust"])
	assert.Len(t, publisher.events, 1)
}

func TestSweep_AutoCompletesPastInProgress(t *testing.T) {
	past := bookedRequest("2026-08-20", StatusInProgress)
	today := bookedRequest("2026-09-01", StatusInProgress)
	pastPending := bookedRequest("2026-08-20", StatusPending)

	publisher := &mockPublisher{}
	svc := NewService(newMockStore(past, today, pastPending), publisher, 5)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}

	_, err := svc.getAllDesignRequests(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, past.Status)
	// same-day appointments are not swept
	assert.Equal(t, StatusInProgress, today.Status)
	// only In Progress requests are eligible
	assert.Equal(t, StatusPending, pastPending.Status)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, realtime.DesignRequestsChannel, publisher.events[0].Channel)
	assert.Equal(t, realtime.DesignRequestUpdatedEvent, publisher.events[0].Name)

	payload, ok := publisher.events[0].Payload.(DesignRequestUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, past.RequestID.Hex(), payload.RequestID)
	assert.Equal(t, string(StatusCompleted), payload.Status)
}
