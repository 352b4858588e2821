package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	calls []struct {
		title   string
		message string
	}
	err error
}

func (r *recordingNotifier) notify(title, message string, _ any) error {
	r.calls = append(r.calls, struct {
		title   string
		message string
	}{title, message})
	return r.err
}

func TestSend(t *testing.T) {
	t.Run("delivers title and message", func(t *testing.T) {
		rec := &recordingNotifier{}
		SetNotifier(rec.notify)
		defer ResetNotifier()

		require.NoError(t, Send("gitwiz", "merge finished"))
		require.Len(t, rec.calls, 1)
		require.Equal(t, "gitwiz", rec.calls[0].title)
		require.Equal(t, "merge finished", rec.calls[0].message)
	})

	t.Run("propagates delivery errors", func(t *testing.T) {
		rec := &recordingNotifier{err: errors.New("no notification daemon")}
		SetNotifier(rec.notify)
		defer ResetNotifier()

		require.Error(t, Send("gitwiz", "sync finished"))
	})
}

func TestCompletedStaysSilentInTests(t *testing.T) {
	t.Setenv("GITWIZ_TEST_NO_INTERACTIVE", "1")

	rec := &recordingNotifier{}
	SetNotifier(rec.notify)
	defer ResetNotifier()

	require.NoError(t, Completed("merge finished"))
	require.Empty(t, rec.calls)
}
