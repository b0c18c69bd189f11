package gekko2d

import "testing"

type MockModule struct {
	installed int
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed++
}

type MockModule2 struct {
	installed int
}

func (m *MockModule2) Install(app *App, commands *Commands) {
	m.installed++
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	if len(app.stages) != 8 {
		t.Errorf("Expected 8 default stages, got %v", len(app.stages))
	}
	if app.stages[0] != Prelude || app.stages[len(app.stages)-1] != Finale {
		t.Errorf("Expected stages to run from Prelude to Finale, got %v", app.stages)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_BuildInstallsOnce(t *testing.T) {
	mockModule := &MockModule{}
	mockModule2 := &MockModule2{}

	app := NewAppBuilder().
		UseModule(mockModule, mockModule2).
		Build()

	if mockModule.installed != 1 || mockModule2.installed != 1 {
		t.Errorf("Expected both modules installed once, got %v and %v", mockModule.installed, mockModule2.installed)
	}

	app.Tick()
	app.Tick()
	if mockModule.installed != 1 {
		t.Errorf("Expected Tick not to reinstall modules, got %v installs", mockModule.installed)
	}
	if app.Frames() != 2 {
		t.Errorf("Expected 2 frames, got %v", app.Frames())
	}
}
