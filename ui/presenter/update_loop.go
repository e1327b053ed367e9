package presenter

// Loop drives periodic updates on the UI thread.
//
// Each Tick first checks Done for an interrupt, then advances the monitor (if
// any) and finally invokes the scheduler callback. A monitor error ends the
// loop without rescheduling. The zero value is usable (methods are nil-safe).
type Loop struct {
	Monitor     *MonitorPresenter
	Done        <-chan struct{}
	OnInterrupt func()
	OnError     func(error)
	Schedule    func()
}

func NewLoop(monitor *MonitorPresenter, done <-chan struct{}, schedule func()) *Loop {
	return &Loop{Monitor: monitor, Done: done, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Done != nil {
		select {
		case <-l.Done:
			if l.OnInterrupt != nil {
				l.OnInterrupt()
			}
			return
		default:
		}
	}
	if l.Monitor != nil {
		if err := l.Monitor.ProcessFrame(); err != nil {
			if l.OnError != nil {
				l.OnError(err)
			}
			return
		}
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
