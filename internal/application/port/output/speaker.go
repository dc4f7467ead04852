package output

// Speaker voices responses out of band. Speak must not block the turn.
type Speaker interface {
	Speak(text string)
}
