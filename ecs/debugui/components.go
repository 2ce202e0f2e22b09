package debugui

import "github.com/plus3/sparsecs/ecs"

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	hasSelection       bool
	filterText         string
	filterComponent    *ecs.ComponentID
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type StoreViewerComponent struct {
	cache         *StoreViewerCache
	selectedStore *ecs.ComponentID
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
}
