package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters, reset only on restart.
var (
	OrdersPlaced      Counter
	OrdersFailed      Counter
	CouponsRedeemed   Counter
	CouponsRejected   Counter
	CouponRaceRetries Counter
	ResetMailsSent    Counter
	ResetMailsFailed  Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_placed":       OrdersPlaced.Load(),
		"orders_failed":       OrdersFailed.Load(),
		"coupons_redeemed":    CouponsRedeemed.Load(),
		"coupons_rejected":    CouponsRejected.Load(),
		"coupon_race_retries": CouponRaceRetries.Load(),
		"reset_mails_sent":    ResetMailsSent.Load(),
		"reset_mails_failed":  ResetMailsFailed.Load(),
	}
}
