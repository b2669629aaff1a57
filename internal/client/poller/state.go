package poller

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// PollState состояние частоты опроса, общее для всех комнат.
// Не потокобезопасно: защищается блокировкой Registry.
type PollState struct {
	backoff  *backoff.ExponentialBackOff
	base     time.Duration
	fast     time.Duration
	ceiling  time.Duration
	interval time.Duration
	failures int
}

// NewPollState создает состояние с базовым интервалом base.
// Каждая последовательная ошибка удваивает текущий интервал (в том числе
// быстрый), но не выше ceiling.
func NewPollState(base, fast, ceiling time.Duration) *PollState {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(2*base),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxInterval(ceiling),
		backoff.WithMaxElapsedTime(0),
	)
	return &PollState{
		backoff:  b,
		base:     base,
		fast:     fast,
		ceiling:  ceiling,
		interval: base,
	}
}

// Success сбрасывает счетчик ошибок. fast выбирает быструю частоту
// (в какой-то комнате есть другой участник), иначе базовую.
func (s *PollState) Success(fast bool) {
	s.failures = 0
	s.backoff.Reset()
	if fast {
		s.interval = s.fast
		return
	}
	s.interval = s.base
}

// Failure увеличивает счетчик ошибок и удваивает интервал
func (s *PollState) Failure() {
	if s.failures == 0 {
		// серия ошибок начинается с интервала, действовавшего до нее
		s.backoff.InitialInterval = 2 * s.interval
		s.backoff.Reset()
	}
	s.failures++
	next := s.backoff.NextBackOff()
	if next == backoff.Stop || next > s.ceiling {
		next = s.ceiling
	}
	s.interval = next
}

// Interval возвращает интервал до следующей итерации
func (s *PollState) Interval() time.Duration {
	return s.interval
}

// Failures возвращает количество последовательных ошибок
func (s *PollState) Failures() int {
	return s.failures
}
