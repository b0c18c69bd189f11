package gekko2d

// Commands is handed to modules and systems to change the app itself.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops App.Run after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exit = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
