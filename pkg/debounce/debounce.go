// Package debounce agrupa ráfagas de eventos: solo la última llamada programada dentro
// de la ventana de espera se ejecuta; las anteriores se cancelan, nunca se encolan.
package debounce

import (
	"sync"
	"time"
)

// Debouncer temporizador cancelable. Es seguro para uso concurrente.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64 // se incrementa en cada Schedule/Cancel; un disparo con gen viejo se descarta
}

// New crea un Debouncer con la ventana delay. delay <= 0 ejecuta en la siguiente oportunidad
// del runtime, sin agrupar.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay devuelve la ventana configurada.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Schedule cancela la llamada pendiente (si la hay) y programa fn tras la ventana.
// fn se ejecuta en una goroutine del temporizador.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel descarta la llamada pendiente. Devuelve true si había una.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pending := d.timer != nil
	d.stopLocked()
	d.gen++
	return pending
}

// Pending indica si hay una llamada programada que aún no se ejecutó.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
