package port

import "podoscope/internal/domain/entity"

// Display интерфейс окна предпросмотра
type Display interface {
	// Show выводит кадр предпросмотра
	Show(frame *entity.Frame) error

	// PollInput возвращает событие ввода без ожидания дольше одного тика
	PollInput() entity.InputEvent
}
