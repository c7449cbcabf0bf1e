// Package jitter добавляет случайность к интервалам повторов, чтобы фоновые задачи
// (очистка объектов MinIO, переподключение outbox-слушателя) не ретраили синхронно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d, увеличенную на случайную долю в пределах factor.
// Результат находится в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff вычисляет задержку перед попыткой attempt (с нуля): base*2^attempt,
// но не больше limit, с применённым джиттером.
func ExponentialBackoff(base, limit time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < limit; i++ {
		backoff *= 2
	}
	if backoff > limit {
		backoff = limit
	}
	return Duration(backoff, factor)
}
