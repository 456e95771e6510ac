package area

import "time"

func (w *AreaWorker) SetClock(now func() time.Time) {
	w.now = now
}
