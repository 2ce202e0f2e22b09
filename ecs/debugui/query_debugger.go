package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
	}
}

func (qd *QueryDebuggerComponent) Render(r *ecs.Registry) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	types := r.Components().Types()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, t := range types {
		name := t.String()
		selected := qd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				qd.selectedComponentTypes[name] = true
			} else {
				delete(qd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	ids := selectedIDs(types, qd.selectedComponentTypes)
	if len(ids) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := r.EntitiesWithAll(ids...)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", e))

				imgui.TableSetColumnIndex(1)
				mask, _ := r.MaskOf(e)
				var names []string
				for id := range mask.Components(len(types)) {
					names = append(names, types[id].String())
				}
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// selectedIDs maps the checked type names back to component ids, in id order.
func selectedIDs(types []reflect.Type, selected map[string]bool) []ecs.ComponentID {
	var ids []ecs.ComponentID
	for i, t := range types {
		if selected[t.String()] {
			ids = append(ids, ecs.ComponentID(i))
		}
	}
	return ids
}
