package scene

// Timer 一次性或重复的计时事件
type Timer struct {
	remaining float64
	interval  float64
	repeat    bool
	action    func()
	cancelled bool
	fired     bool
}

// Cancel 取消计时器；下一次求值时被跳过
func (t *Timer) Cancel() { t.cancelled = true }

// Cancelled 是否已取消
func (t *Timer) Cancelled() bool { return t.cancelled }

// minInterval 重复计时器的最小间隔，避免零间隔导致单帧内无限触发
const minInterval = 1e-3

// After delay 秒后执行一次 action
func (s *Scene) After(delay float64, action func()) *Timer {
	t := &Timer{remaining: delay, action: action}
	s.timers = append(s.timers, t)
	return t
}

// Every 每隔 interval 秒执行一次 action
func (s *Scene) Every(interval float64, action func()) *Timer {
	if interval < minInterval {
		logger.Urgent("repeating timer interval too small, clamped", "interval", interval)
		interval = minInterval
	}
	t := &Timer{remaining: interval, interval: interval, repeat: true, action: action}
	s.timers = append(s.timers, t)
	return t
}

// PendingTimers 尚在列表中的计时器数量
func (s *Scene) PendingTimers() int { return len(s.timers) }

// RunTimers 推进所有计时器并执行到期的动作
//
// 回调中新注册的计时器从下一帧开始计时；到期的一次性计时器与已取消的计时器在本轮结束后移出列表。
func (s *Scene) RunTimers(elapsed float64) {
	n := len(s.timers)
	for i := 0; i < n; i++ {
		t := s.timers[i]
		if t.cancelled || t.fired {
			continue
		}
		t.remaining -= elapsed
		for t.remaining <= 0 && !t.cancelled {
			t.action()
			if !t.repeat {
				t.fired = true
				break
			}
			t.remaining += t.interval
		}
	}
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled && !t.fired {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}
