package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// Fixed assistant summaries. The orchestrator uses these instead of a diff
	// call when no previous diagram existed or when the new diagram is
	// byte-identical to the previous one.
	SummaryFirstDiagram = "He generado el nuevo diagrama de acuerdo a tu solicitud."
	SummaryNoChanges    = "El diagrama se ha procesado y no presenta cambios respecto a la versión anterior."

	// Assistant-facing error messages, one per failure class.
	ErrMsgCredentialMissing = "Error: No pude obtener la API key. Por favor configura tu API key en la configuración."
	ErrMsgModelTransport    = "Lo siento, hubo un problema al contactar al modelo. Intenta enviar tu mensaje de nuevo."
	ErrMsgPersistence       = "Tu diagrama se generó pero no pude guardarlo. Vuelve a enviar el mensaje para reintentar."
)

// WelcomeMessages is the fixed pool for new conversations; the loader picks
// one at random as the seeded assistant turn.
var WelcomeMessages = []string{
	"¡Hola! Cuéntame qué base de datos necesitas y la diseñamos juntos.",
	"¡Bienvenido! Describe tu aplicación y te propongo un esquema de base de datos.",
	"Hola, soy tu asistente de diseño de bases de datos. ¿Qué sistema quieres modelar?",
	"¡Hola! Describe las entidades de tu proyecto y genero el diagrama y el SQL por ti.",
}
