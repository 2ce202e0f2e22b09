// Package debugui provides Dear ImGui panels for inspecting a Registry at
// runtime: an entity browser, a component inspector, a store viewer, a query
// debugger and scheduler performance stats.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

// ImguiItem is an extra render function drawn after the built-in panels.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Game input should be ignored while ImGui wants the mouse or keyboard.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the debug panels of one Registry. Call Render between the
// backend's BeginFrame and EndFrame.
type Overlay struct {
	Visible bool
	Items   []ImguiItem

	registry   *ecs.Registry
	scheduler  *ecs.Scheduler
	inputState *ecs.Singleton[ImguiInputState]

	browser   EntityBrowserComponent
	inspector ComponentInspectorComponent
	stores    StoreViewerComponent
	stats     PerformanceStatsComponent
	query     QueryDebuggerComponent
}

// NewOverlay builds the panels for r. s may be nil, which hides the
// per-system timings.
func NewOverlay(r *ecs.Registry, s *ecs.Scheduler) *Overlay {
	return &Overlay{
		registry:   r,
		scheduler:  s,
		inputState: ecs.NewSingleton[ImguiInputState](r),
		browser:    NewEntityBrowserComponent(100),
		inspector:  NewComponentInspectorComponent(),
		stores:     NewStoreViewerComponent(),
		stats:      NewPerformanceStatsComponent(120),
		query:      NewQueryDebuggerComponent(),
	}
}

// Render updates the input capture singleton and draws every panel.
func (o *Overlay) Render(deltaTime float32) {
	state := o.inputState.Get()
	state.WantCaptureMouse = o.Visible && imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = o.Visible && imgui.CurrentIO().WantCaptureKeyboard()
	if !o.Visible {
		return
	}

	if id, ok := o.stores.Render(o.registry); ok {
		o.browser.SetComponentFilter(id)
	}
	o.browser.Render(o.registry)
	selected, ok := o.browser.GetSelectedEntity()
	o.inspector.Render(o.registry, selected, ok)
	o.stats.Render(o.registry, o.scheduler, deltaTime)
	o.query.Render(o.registry)

	for _, item := range o.Items {
		item.Render()
	}
}
