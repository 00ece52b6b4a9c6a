package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/zplpress/internal/labels"
)

func TestStore_RecordSuccess(t *testing.T) {
	var s Store

	before := time.Now()
	s.Record(labels.Result{Printer: "Zebra", Labels: 3, Sent: 3, Mode: labels.ModeAll}, nil)

	snap := s.Snapshot()
	require.True(t, snap.HasResult)
	assert.Equal(t, "Zebra", snap.Last.Printer)
	assert.Equal(t, 1, snap.Runs)
	assert.Equal(t, 3, snap.Printed)
	assert.NoError(t, snap.LastError)
	assert.False(t, snap.Failing())
	assert.False(t, snap.LastUpdated.Before(before))
}

func TestStore_RecordFailureKeepsPartialCount(t *testing.T) {
	var s Store

	s.Record(labels.Result{Sent: 2}, nil)
	origErr := errors.New("job 2 of 3: offline")
	s.Record(labels.Result{Sent: 1}, origErr)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Runs)
	assert.Equal(t, 3, snap.Printed)
	require.Error(t, snap.LastError)
	assert.Equal(t, "job 2 of 3: offline", snap.LastError.Error())
	assert.ErrorIs(t, snap.LastError, origErr)
	assert.NotEqual(t, reflect.ValueOf(origErr).Pointer(), reflect.ValueOf(snap.LastError).Pointer(),
		"Snapshot should copy the error value")
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	assert.False(t, s.Snapshot().Failing())

	s.Record(labels.Result{}, errors.New("fail 1"))
	s.Record(labels.Result{}, errors.New("fail 2"))
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.ConsecutiveFailures)
	assert.True(t, snap.Failing())

	s.Record(labels.Result{Sent: 1}, nil)
	snap = s.Snapshot()
	assert.Zero(t, snap.ConsecutiveFailures)
	assert.False(t, snap.Failing())
	assert.NoError(t, snap.LastError)
}

func TestStore_ConcurrentRecord(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Record(labels.Result{Sent: 1}, nil)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, 20, snap.Runs)
	assert.Equal(t, 20, snap.Printed)
}
