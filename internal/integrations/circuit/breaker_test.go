package circuit

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

func TestNew_TripsAfterThreshold(t *testing.T) {
	log := &recordingLogger{}
	cb := New[int](Settings{Name: "catalog", FailureThreshold: 2, Timeout: time.Minute}, log)

	failing := func() (int, error) { return 0, errors.New("boom") }

	_, _ = cb.Execute(failing)
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	_, _ = cb.Execute(failing)
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	assert.Len(t, log.messages, 1)
	assert.Contains(t, log.messages[0], "closed -> open")
}

func TestNew_BusinessErrorsDoNotTrip(t *testing.T) {
	notFound := errors.New("not found")
	cb := New[int](Settings{
		Name:             "catalog",
		FailureThreshold: 1,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, notFound)
		},
	}, nil)

	_, err := cb.Execute(func() (int, error) { return 0, notFound })
	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
