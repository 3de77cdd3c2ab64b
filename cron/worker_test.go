package cron

import (
	"context"
	"testing"

	"reviewdesk/models"
	"reviewdesk/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	handled []string
}

func (h *recordingHandler) HandleReviewReceivedTask(_ context.Context, task *asynq.Task) error {
	h.handled = append(h.handled, task.Type())
	return nil
}

func TestServeMuxRoutesReviewTasks(t *testing.T) {
	h := &recordingHandler{}
	mux := NewServeMux(h)

	task, _, err := tasks.NewReviewReceivedTask(models.ReviewReceivedPayload{ReviewID: "r1"})
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), task))
	require.Equal(t, []string{tasks.TypeReviewReceived}, h.handled)

	err = mux.ProcessTask(context.Background(), asynq.NewTask("unknown:type", nil))
	require.Error(t, err)
}
