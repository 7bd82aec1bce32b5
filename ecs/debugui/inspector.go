package debugui

import (
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flappybird/ecs"
)

const (
	HierarchyWidth = 200
	InspectorWidth = 250

	frameHistorySize = 120
)

const panelFlags = imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

// Inspector draws two panels: a hierarchy of entities and resources on the
// left, and the selected entity's components on the right. With several
// entities selected the right panel shows the components they share and
// applies edits to all of them.
type Inspector struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	selection *Selection
	resource  reflect.Type
	filter    string

	frames *FrameHistory
	timer  *FrameTimer
}

// NewInspector returns an inspector for storage. scheduler may be nil, in
// which case system timings are not shown.
func NewInspector(storage *ecs.Storage, scheduler *ecs.Scheduler) *Inspector {
	return &Inspector{
		storage:   storage,
		scheduler: scheduler,
		selection: NewSelection(),
		frames:    NewFrameHistory(frameHistorySize),
		timer:     NewFrameTimer(),
	}
}

func (in *Inspector) Selection() *Selection {
	return in.selection
}

// Render draws both panels. It must run between the backend's BeginFrame and
// EndFrame.
func (in *Inspector) Render() {
	in.selection.Prune(in.storage)
	if in.resource != nil && in.storage.GetSingleton(in.resource) == nil {
		in.resource = nil
	}

	display := imgui.CurrentIO().DisplaySize()
	in.renderHierarchy(display.Y)
	in.renderInspector(display.X, display.Y)
}

func (in *Inspector) renderHierarchy(height float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(0, 0), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(HierarchyWidth, height), imgui.CondAlways)

	if !imgui.BeginV("Hierarchy", nil, panelFlags) {
		imgui.End()
		return
	}

	imgui.Text("Press escape to toggle UI")
	imgui.Separator()
	in.renderEntityList()
	imgui.Separator()
	in.renderResourceList()
	in.renderPerformance()

	imgui.End()
}

func (in *Inspector) renderInspector(width, height float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(width-InspectorWidth, 0), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(InspectorWidth, height), imgui.CondAlways)

	if !imgui.BeginV("Inspector", nil, panelFlags) {
		imgui.End()
		return
	}

	switch ids := in.selection.IDs(); {
	case in.resource != nil:
		in.renderResource(in.resource)
	case len(ids) == 0:
		imgui.Text("Select an entity or resource")
	case len(ids) == 1:
		in.renderEntity(ids[0])
	default:
		in.renderShared(ids)
	}

	imgui.End()
}
