package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

type StoreInfo struct {
	ID    ecs.ComponentID
	Name  string
	Count int
}

type StoreViewerCache struct {
	stores        []StoreInfo
	sortColumn    int
	sortAscending bool
}

func NewStoreViewerComponent() StoreViewerComponent {
	return StoreViewerComponent{
		cache: &StoreViewerCache{
			sortColumn:    2,
			sortAscending: false,
		},
	}
}

// Render draws one row per component store and returns the store clicked
// this frame.
func (sv *StoreViewerComponent) Render(r *ecs.Registry) (ecs.ComponentID, bool) {
	if !imgui.BeginV("Component Stores", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0, false
	}

	sv.cache.stores = collectStores(r.CollectStats())
	sortStores(sv.cache.stores, sv.cache.sortColumn, sv.cache.sortAscending)

	maxCount := 0
	for _, store := range sv.cache.stores {
		maxCount = max(maxCount, store.Count)
	}

	var clicked *ecs.ComponentID

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StoreTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortStores(sv.cache.stores, sv.cache.sortColumn, sv.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, store := range sv.cache.stores {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedStore != nil && *sv.selectedStore == store.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", store.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := store.ID
				clicked = &id
				sv.selectedStore = &id
			}

			imgui.TableNextColumn()
			imgui.Text(store.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", store.Count))

			if maxCount > 0 {
				barWidth := float32(store.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	if clicked == nil {
		return 0, false
	}
	return *clicked, true
}

func collectStores(stats *ecs.RegistryStats) []StoreInfo {
	stores := make([]StoreInfo, 0, len(stats.Components))
	for _, c := range stats.Components {
		stores = append(stores, StoreInfo{
			ID:    c.ID,
			Name:  c.Type.String(),
			Count: c.Count,
		})
	}
	return stores
}

func sortStores(stores []StoreInfo, column int, ascending bool) {
	sort.SliceStable(stores, func(i, j int) bool {
		a, b := stores[i], stores[j]
		if !ascending {
			a, b = b, a
		}

		switch column {
		case 0:
			return a.ID < b.ID
		case 1:
			return a.Name < b.Name
		default:
			return a.Count < b.Count
		}
	})
}
