package page

import "sync"

// Input is a text input whose value is read at rebuild time.
type Input struct {
	mu        sync.RWMutex
	value     string
	listeners listeners
}

// Value returns the current value.
func (in *Input) Value() string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.value
}

// Set stores v and fires the change listeners.
func (in *Input) Set(v string) {
	in.mu.Lock()
	in.value = v
	in.mu.Unlock()
	in.listeners.fire()
}

// OnChange registers fn as a change listener. The returned function removes it.
func (in *Input) OnChange(fn func()) (remove func()) { return in.listeners.add(fn) }

// Listeners returns the number of attached change listeners.
func (in *Input) Listeners() int { return in.listeners.len() }

// Output is a text element that receives status lines.
type Output struct {
	mu   sync.RWMutex
	text string
}

// SetText implements render.Output.
func (o *Output) SetText(text string) {
	o.mu.Lock()
	o.text = text
	o.mu.Unlock()
}

// Text returns the last text set.
func (o *Output) Text() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.text
}

// listeners is a set of callbacks that fire in registration order.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
	ids  []int
}

func (l *listeners) add(fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.ids = append(l.ids, id)

	var once sync.Once
	return func() { once.Do(func() { l.remove(id) }) }
}

func (l *listeners) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.fns, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
}

// fire calls every listener outside the lock so listeners may add or remove
// listeners themselves.
func (l *listeners) fire() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.ids))
	for _, id := range l.ids {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (l *listeners) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}
