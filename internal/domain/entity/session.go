package entity

// SessionPhase состояние сессии захвата
type SessionPhase string

const (
	PhasePreviewing SessionPhase = "previewing" // идёт предпросмотр
	PhaseAccepted   SessionPhase = "accepted"   // оператор подтвердил захват
	PhaseCancelled  SessionPhase = "cancelled"  // оператор отменил захват
	PhaseAborted    SessionPhase = "aborted"    // сессия прервана ошибкой
)

// Terminal сообщает, что из состояния больше нет переходов.
func (p SessionPhase) Terminal() bool {
	return p != PhasePreviewing
}

// InputEvent событие ввода от коллаборатора отображения
type InputEvent int

const (
	InputNone InputEvent = iota
	InputAcquire
	InputCancel
)

func (e InputEvent) String() string {
	switch e {
	case InputAcquire:
		return "acquire"
	case InputCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Layout ось склейки двух кадров
type Layout string

const (
	LayoutSideBySide Layout = "side_by_side"
	LayoutStacked    Layout = "stacked"
)
