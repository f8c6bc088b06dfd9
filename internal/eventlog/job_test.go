package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	tests := []struct {
		name      string
		retention int
		setup     func(*MockRepository)
		wantErr   string
	}{
		{
			name:      "prunes with retention",
			retention: 30,
			setup: func(r *MockRepository) {
				r.On("CleanupOldEvents", mock.Anything, 30).Return(int64(12), nil)
			},
		},
		{
			name:      "propagates store error",
			retention: 30,
			setup: func(r *MockRepository) {
				r.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), errors.New("db error"))
			},
			wantErr: "db error",
		},
		{
			name:      "zero retention skips the store",
			retention: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.setup != nil {
				tt.setup(repo)
			}

			err := NewCleanupJob(NewService(repo), tt.retention).Process(context.Background())

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			if tt.setup == nil {
				repo.AssertNotCalled(t, "CleanupOldEvents", mock.Anything, mock.Anything)
			}
		})
	}
}
