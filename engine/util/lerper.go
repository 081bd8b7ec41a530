package util

// Lerper moves a value from start to finish over duration seconds, pushing
// every step through setValue.
type Lerper[V any] struct {
	start, finish V
	duration      float64
	timer         float64
	setValue      func(V)
	lerpValue     func(V, V, float64) V
	isDone        bool
}

func NewLerper[V any](lerpValue func(V, V, float64) V, setValue func(V), start, finish V, duration float64) *Lerper[V] {
	return &Lerper[V]{
		start:     start,
		finish:    finish,
		duration:  duration,
		lerpValue: lerpValue,
		setValue:  setValue,
	}
}

func LerpFloat32(a, b float32, t float64) float32 {
	return a + (b-a)*float32(t)
}

func (l *Lerper[V]) IsDone() bool {
	return l.isDone
}

// Retarget starts a new transition from from to finish, keeping the duration.
func (l *Lerper[V]) Retarget(from, finish V) {
	l.start = from
	l.finish = finish
	l.timer = 0
	l.isDone = false
}

// Update advances the transition and reports whether it has finished.
func (l *Lerper[V]) Update(deltaTime float64) bool {
	if l.isDone {
		return true
	}

	l.timer += deltaTime
	if l.timer >= l.duration {
		l.setValue(l.finish)
		l.isDone = true
		return true
	}

	l.setValue(l.lerpValue(l.start, l.finish, l.timer/l.duration))
	return false
}
