package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flappybird/ecs"
)

// EntityInfo is one row of the hierarchy panel.
type EntityInfo struct {
	ID    ecs.EntityId
	Label string
}

// EntityLabel names an entity by its component types, e.g. "Bird, Sprite, Transform".
func EntityLabel(storage *ecs.Storage, id ecs.EntityId) string {
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil {
		return fmt.Sprintf("Entity %d", id)
	}

	names := make([]string, 0, len(archetype.Types()))
	for _, t := range archetype.Types() {
		names = append(names, typeName(t))
	}
	return strings.Join(names, ", ")
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// ListEntities returns every live entity whose label contains filter, case
// insensitively, ordered by archetype and then index.
func ListEntities(storage *ecs.Storage, filter string) []EntityInfo {
	filter = strings.ToLower(filter)

	var rows []EntityInfo
	for _, archetype := range storage.GetArchetypes() {
		for id := range archetype.Iter() {
			label := EntityLabel(storage, id)
			if filter != "" && !strings.Contains(strings.ToLower(label), filter) {
				continue
			}
			rows = append(rows, EntityInfo{ID: id, Label: label})
		}
	}
	return rows
}

// SharedComponentTypes returns the component types every entity in ids has,
// ordered by name.
func SharedComponentTypes(storage *ecs.Storage, ids []ecs.EntityId) []reflect.Type {
	var shared []reflect.Type
	for i, id := range ids {
		archetype := storage.GetArchetypeById(id.ArchetypeId())
		if archetype == nil {
			return nil
		}
		if i == 0 {
			shared = slices.Clone(archetype.Types())
			continue
		}
		shared = slices.DeleteFunc(shared, func(t reflect.Type) bool {
			return !archetype.HasComponent(t)
		})
	}
	slices.SortFunc(shared, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return shared
}

func (in *Inspector) renderEntityList() {
	imgui.InputTextWithHint("##filter", "Filter...", &in.filter, imgui.InputTextFlagsNone, nil)

	rows := ListEntities(in.storage, in.filter)
	imgui.Text(fmt.Sprintf("Entities: %d", len(rows)))

	for _, row := range rows {
		checked := in.selection.Contains(row.ID)
		if imgui.Checkbox(fmt.Sprintf("##pick%d", row.ID), &checked) {
			in.selection.Toggle(row.ID)
			in.resource = nil
		}
		imgui.SameLine()

		label := fmt.Sprintf("%d %s##row%d", row.ID.Index(), row.Label, row.ID)
		if imgui.SelectableBoolV(label, in.selection.Contains(row.ID), imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			in.selection.Select(row.ID)
			in.resource = nil
		}
	}
}

func (in *Inspector) renderResourceList() {
	if !imgui.TreeNodeStr("Resources") {
		return
	}
	for _, t := range in.storage.SingletonTypes() {
		label := fmt.Sprintf("%s##res%s", typeName(t), t.String())
		if imgui.SelectableBoolV(label, in.resource == t, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			in.resource = t
			in.selection.Clear()
		}
	}
	imgui.TreePop()
}
