package push

import (
	"testing"

	"github.com/and161185/kaspi-console/internal/comments"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/and161185/kaspi-console/internal/reconcile"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *reconcile.Store, *comments.Tracker) {
	store := reconcile.NewStore()
	tracker := comments.NewTracker()
	return NewDispatcher(store, tracker, zaptest.NewLogger(t).Sugar()), store, tracker
}

func TestDispatchStatusUpdate(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	err := d.Dispatch([]byte(`{"event":"orderStatusUpdate","data":{"orderId":"101","newStatus":"PACKAGED","timestamp":1715320800000}}`))
	require.NoError(t, err)
	err = d.Dispatch([]byte(`{"event":"orderStatusUpdate","data":{"orderId":"101","newStatus":"ON_DELIVERY","timestamp":"2024-05-10T06:00:00Z"}}`))
	require.NoError(t, err)

	o, ok := store.Lookup("101")
	require.True(t, ok)
	require.Equal(t, model.OnDelivery, o.Status)
	require.Equal(t, model.PushTimestamp("2024-05-10T06:00:00Z"), o.Timestamp)
	require.Equal(t, 1, store.Len())
}

func TestDispatchUnknownStatusLeavesStoreUntouched(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	err := d.Dispatch([]byte(`{"event":"orderStatusUpdate","data":{"orderId":"101","newStatus":"LOST_IN_SPACE"}}`))
	require.ErrorIs(t, err, errs.ErrUnknownStatus)
	require.Zero(t, store.Len())
}

func TestDispatchNewComment(t *testing.T) {
	d, _, tracker := newTestDispatcher(t)

	err := d.Dispatch([]byte(`{"event":"newComment","data":{"orderKaspiId":"101","comment":{"id":"c1","text":"call first"}}}`))
	require.NoError(t, err)
	require.Equal(t, 1, tracker.Count("101"))
}

func TestDispatchMalformed(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	require.Error(t, d.Dispatch([]byte(`not json`)))
	require.Error(t, d.Dispatch([]byte(`{"event":"orderStatusUpdate","data":"oops"}`)))
	require.NoError(t, d.Dispatch([]byte(`{"event":"somethingElse","data":{}}`)))
	require.Zero(t, store.Len())
}
