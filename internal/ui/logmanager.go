package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2/widget"
)

const DefaultMaxLogMessages = 100

// LogUIManager keeps a bounded history of status messages and pages through
// them with the previous/next buttons of the status bar. Not safe for
// concurrent use; Logger hands messages over from other goroutines.
type LogUIManager struct {
	entries  []string
	pos      int
	capacity int

	label   *widget.Label
	prevBtn *widget.Button
	nextBtn *widget.Button
}

func NewLogUIManager(label *widget.Label, prevBtn, nextBtn *widget.Button, capacity int) *LogUIManager {
	if capacity <= 0 {
		capacity = DefaultMaxLogMessages
	}
	return &LogUIManager{
		entries:  make([]string, 0, capacity),
		pos:      -1,
		capacity: capacity,
		label:    label,
		prevBtn:  prevBtn,
		nextBtn:  nextBtn,
	}
}

// AddLogMessage stores message, drops the oldest past capacity and jumps to it.
func (lm *LogUIManager) AddLogMessage(message string) {
	if len(lm.entries) == lm.capacity {
		copy(lm.entries, lm.entries[1:])
		lm.entries = lm.entries[:len(lm.entries)-1]
	}
	lm.entries = append(lm.entries, message)
	lm.pos = len(lm.entries) - 1
	lm.UpdateLogDisplay()
}

// Messages returns the stored history, oldest first.
func (lm *LogUIManager) Messages() []string {
	return append([]string(nil), lm.entries...)
}

// Current returns the index of the message on display, -1 when empty.
func (lm *LogUIManager) Current() int {
	return lm.pos
}

// UpdateLogDisplay redraws the label and the paging buttons.
func (lm *LogUIManager) UpdateLogDisplay() {
	if lm.label == nil || lm.prevBtn == nil || lm.nextBtn == nil {
		return
	}
	n := len(lm.entries)
	if n == 0 {
		lm.label.SetText("")
		setEnabled(lm.prevBtn, false)
		setEnabled(lm.nextBtn, false)
		return
	}
	lm.pos = max(0, min(lm.pos, n-1))

	lm.label.SetText(fmt.Sprintf("[%d/%d] %s", lm.pos+1, n, lm.entries[lm.pos]))
	setEnabled(lm.prevBtn, lm.pos > 0)
	setEnabled(lm.nextBtn, lm.pos < n-1)
}

// ShowPreviousLogMessage steps back towards the oldest message.
func (lm *LogUIManager) ShowPreviousLogMessage() {
	lm.step(-1)
}

// ShowNextLogMessage steps forward towards the newest message.
func (lm *LogUIManager) ShowNextLogMessage() {
	lm.step(1)
}

func (lm *LogUIManager) step(delta int) {
	next := lm.pos + delta
	if next < 0 || next >= len(lm.entries) {
		return
	}
	lm.pos = next
	lm.UpdateLogDisplay()
}

// Logger returns a logger that is safe to call from any goroutine. dispatch
// hops to the UI goroutine. A nil manager logs to the console.
func (lm *LogUIManager) Logger(dispatch func(func())) func(string) {
	return func(message string) {
		if lm == nil {
			log.Printf("LogUIManager not ready, console log: %s", message)
			return
		}
		dispatch(func() { lm.AddLogMessage(message) })
	}
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
