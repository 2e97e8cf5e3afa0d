package term

// Command is a side effect a primitive asks the Application to perform after
// handling an event. Nil means nothing to do.
type Command any

// BatchCommand runs each command in order.
type BatchCommand []Command

// AppendCommand combines two commands into one. Nil commands are dropped and
// batches are flattened.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	return append(flatten(current), flatten(next)...)
}

func flatten(cmd Command) BatchCommand {
	if batch, ok := cmd.(BatchCommand); ok {
		return append(BatchCommand(nil), batch...)
	}
	return BatchCommand{cmd}
}

// SetFocusCommand moves the keyboard focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand asks for the screen to be drawn again.
type RedrawCommand struct{}

// QuitCommand stops the event loop.
type QuitCommand struct{}

// SetClipboardCommand copies text to the system clipboard.
type SetClipboardCommand string

// ConsumeEventCommand marks an event as handled without any other effect.
type ConsumeEventCommand struct{}
