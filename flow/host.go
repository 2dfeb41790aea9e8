package flow

import "github.com/mohitkumar/onboarding/model"

// Host owns the visibility of a questionnaire, the way a page owns the
// isOpen flag and onClose callback of its onboarding dialog. Open returns
// the flow in progress, or a fresh one when there is none or the last one
// completed; nothing survives a close or a completion.
type Host struct {
	questions  []model.Question
	onComplete func(model.AnswerMap)
	onClose    func()
	flow       *Flow
}

func NewHost(questions []model.Question, onComplete func(model.AnswerMap), onClose func()) *Host {
	return &Host{
		questions:  questions,
		onComplete: onComplete,
		onClose:    onClose,
	}
}

func (h *Host) Open() *Flow {
	if h.flow != nil && !h.flow.Completed() {
		return h.flow
	}
	f := New(h.questions, h.onComplete)
	f.OnClose(func() { h.hide(f) })
	h.flow = f
	return f
}

func (h *Host) IsOpen() bool {
	return h.flow != nil
}

func (h *Host) Flow() *Flow {
	return h.flow
}

func (h *Host) Close() {
	if h.flow == nil {
		return
	}
	h.flow.Close()
}

func (h *Host) hide(f *Flow) {
	if h.flow != f {
		return
	}
	h.flow = nil
	if h.onClose != nil {
		h.onClose()
	}
}
