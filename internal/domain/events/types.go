package events

// EventType define los tipos de actividad soportados.
// @Enum veterinary, grooming, training, walk, other
type EventType string

const (
	EventTypeVeterinary EventType = "veterinary"
	EventTypeGrooming   EventType = "grooming"
	EventTypeTraining   EventType = "training"
	EventTypeWalk       EventType = "walk"
	EventTypeOther      EventType = "other"
)

// EventTypeInfo es metadata de presentación del tipo; la lógica de
// dominio no la consulta.
type EventTypeInfo struct {
	Label string
	Icon  string
	Color string
}

var EventTypeMeta = map[EventType]EventTypeInfo{
	EventTypeVeterinary: {Label: "Veterinario", Icon: "stethoscope", Color: "red"},
	EventTypeGrooming:   {Label: "Peluquería", Icon: "scissors", Color: "purple"},
	EventTypeTraining:   {Label: "Entrenamiento", Icon: "graduationcap", Color: "blue"},
	EventTypeWalk:       {Label: "Paseo", Icon: "figure.walk", Color: "green"},
	EventTypeOther:      {Label: "Otro", Icon: "calendar", Color: "gray"},
}

func ValidEventType(t EventType) bool {
	_, ok := EventTypeMeta[t]
	return ok
}
