package entity

// OutputArtifact результат подтверждённой сессии: исправленные кадры
// обеих камер и их склейка в полном разрешении.
type OutputArtifact struct {
	Left      *Frame
	Right     *Frame
	Composite *Frame
	DPI       int    // плотность для печати в масштабе
	NamingKey string // метка времени вида 2006-01-02-150405
}
