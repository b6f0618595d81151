package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/profleet/fleettrack/services/tracking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaleSweeper_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTrackingUC(ctrl)
	sweeper := NewStaleSweeper(mockUC, "@every 30s")

	mockUC.EXPECT().SweepStale(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (int, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return 2, nil
		})
	mockUC.EXPECT().SweepStale(gomock.Any()).Return(0, errors.New("redis down"))

	sweeper.Sweep()
	sweeper.Sweep()
}

func TestStaleSweeper_InvalidSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sweeper := NewStaleSweeper(mocks.NewMockTrackingUC(ctrl), "every now and then")

	err := sweeper.Start()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid stale sweep schedule")
}

func TestStaleSweeper_RunsOnSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTrackingUC(ctrl)
	var runs atomic.Int32
	mockUC.EXPECT().SweepStale(gomock.Any()).
		DoAndReturn(func(context.Context) (int, error) {
			runs.Add(1)
			return 0, nil
		}).AnyTimes()

	sweeper := NewStaleSweeper(mockUC, "@every 1s")
	require.NoError(t, sweeper.Start())

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, sweeper.Stop(ctx))
}
